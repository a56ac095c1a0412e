package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tutorhive/booking_gateway/booking"
	"github.com/tutorhive/booking_gateway/client"
)

// GetBookingSession hydrates a booking's session for display.
func (h *Handler) GetBookingSession(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	session, err := h.API.GetSessionByBookingID(c.Context(), bookingID)
	if errors.Is(err, client.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No session exists for this booking"})
	}
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(session)
}

type UpdateSessionRequest struct {
	VideoCallLink string `json:"video_call_link" validate:"required,url"`
	SessionNotes  string `json:"session_notes" validate:"required,min=10"`
	StartTime     string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime       string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// UpdateBookingSession lets the owning tutor move or relabel an existing
// session while the booking is confirmed or completed. The new window must
// still fit inside the booking window.
func (h *Handler) UpdateBookingSession(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	b, err := h.API.GetBooking(c.Context(), bookingID)
	if err != nil {
		return h.respondError(c, err)
	}
	session, err := h.API.GetSessionByBookingID(c.Context(), bookingID)
	if errors.Is(err, client.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No session exists for this booking"})
	}
	if err != nil {
		return h.respondError(c, err)
	}

	if !booking.CanEditSession(b, &session, actor) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You cannot edit the session for this booking"})
	}

	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)
	in := booking.SessionInput{
		BookingID:     bookingID,
		VideoCallLink: req.VideoCallLink,
		SessionNotes:  req.SessionNotes,
		StartTime:     startTime,
		EndTime:       endTime,
	}
	if err := booking.ValidateSessionWindow(in, b); err != nil {
		return h.respondError(c, err)
	}

	updated, err := h.API.UpdateSession(c.Context(), session.ID, in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(updated)
}
