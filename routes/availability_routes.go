package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorhive/booking_gateway/handlers"
)

func AvailabilityRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api/v1")

	api.Get("/tutors/:tutorId/availability", h.GetTutorAvailability)
}
