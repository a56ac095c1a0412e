package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tutorhive/booking_gateway/booking"
	"github.com/tutorhive/booking_gateway/client"
	"github.com/tutorhive/booking_gateway/models"
)

type ConfirmBookingRequest struct {
	VideoCallLink string `json:"video_call_link" validate:"required,url"`
	SessionNotes  string `json:"session_notes" validate:"required,min=10"`
	StartTime     string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime       string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// ConfirmBooking runs the two-phase confirm: the status change and the
// session creation are one logical operation from the tutor's perspective.
func (h *Handler) ConfirmBooking(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req ConfirmBookingRequest
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

	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	result, err := h.Flow.RequestTransition(c.Context(), b, booking.TransitionRequest{
		Target: models.StatusConfirmed,
		Actor:  actor,
		Session: &booking.SessionInput{
			VideoCallLink: req.VideoCallLink,
			SessionNotes:  req.SessionNotes,
			StartTime:     startTime,
			EndTime:       endTime,
		},
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"booking": result.Booking,
		"session": result.Session,
	})
}

func (h *Handler) RejectBooking(c *fiber.Ctx) error {
	return h.simpleTransition(c, models.StatusRejected)
}

func (h *Handler) CompleteBooking(c *fiber.Ctx) error {
	return h.simpleTransition(c, models.StatusCompleted)
}

func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	return h.simpleTransition(c, models.StatusCancelled)
}

// simpleTransition covers the single-request moves: reject, cancel,
// complete.
func (h *Handler) simpleTransition(c *fiber.Ctx, target models.Status) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	b, err := h.API.GetBooking(c.Context(), bookingID)
	if err != nil {
		return h.respondError(c, err)
	}

	result, err := h.Flow.RequestTransition(c.Context(), b, booking.TransitionRequest{Target: target, Actor: actor})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"booking": result.Booking})
}

// GetBookingActions reports which transitions the gateway would offer the
// current user. Advisory only: the backend can still reject any of them.
func (h *Handler) GetBookingActions(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user identity"})
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	b, err := h.API.GetBooking(c.Context(), bookingID)
	if err != nil {
		return h.respondError(c, err)
	}

	var session *models.Session
	s, err := h.API.GetSessionByBookingID(c.Context(), bookingID)
	if err == nil {
		session = &s
	} else if !errors.Is(err, client.ErrSessionNotFound) {
		return h.respondError(c, err)
	}

	now := time.Now()
	return c.JSON(fiber.Map{
		"can_confirm_or_reject":  booking.CanConfirmOrReject(b, actor),
		"can_cancel":             booking.CanCancel(b, actor),
		"can_complete":           booking.CanComplete(b, actor, now),
		"needs_session_creation": booking.NeedsSessionCreation(b, session),
		"can_edit_session":       booking.CanEditSession(b, session, actor),
	})
}
