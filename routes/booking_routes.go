package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorhive/booking_gateway/handlers"
	"github.com/tutorhive/booking_gateway/middleware"
)

func BookingRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Get("/:bookingId/actions", h.GetBookingActions)
	bookings.Get("/:bookingId/session", h.GetBookingSession)
	bookings.Post("/:bookingId/cancel", middleware.StudentRequired(), h.CancelBooking)

	tutorBookings := api.Group("/tutor/bookings", middleware.Protected(), middleware.TutorRequired())
	tutorBookings.Post("/:bookingId/confirm", h.ConfirmBooking)
	tutorBookings.Post("/:bookingId/reject", h.RejectBooking)
	tutorBookings.Post("/:bookingId/complete", h.CompleteBooking)
	tutorBookings.Put("/:bookingId/session", h.UpdateBookingSession)
}
