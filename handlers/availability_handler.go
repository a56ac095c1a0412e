package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tutorhive/booking_gateway/availability"
)

// GetTutorAvailability serves a tutor's projected slots: booked slots
// dropped, recurring weekly instances collapsed to one summary each,
// sorted by start time. Fresh cache entries are served directly; a miss
// fetches from the backend and primes the cache for the refresh job.
func (h *Handler) GetTutorAvailability(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	if slots, ok := h.Slots.Get(tutorID); ok {
		return c.JSON(slots)
	}

	now := time.Now()
	raw, err := h.API.GetAvailableSlots(c.Context(), tutorID, now, now.Add(h.Lookahead))
	if err != nil {
		return h.respondError(c, err)
	}

	projected := availability.Project(raw)
	h.Slots.Put(tutorID, projected)
	return c.JSON(projected)
}
