package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhive/booking_gateway/booking"
	"github.com/tutorhive/booking_gateway/cache"
	"github.com/tutorhive/booking_gateway/models"
)

var validate = validator.New()

// BackendAPI is everything the gateway needs from the marketplace backend.
type BackendAPI interface {
	booking.BackendAPI
	GetBooking(ctx context.Context, bookingID uuid.UUID) (models.Booking, error)
	GetSessionByBookingID(ctx context.Context, bookingID uuid.UUID) (models.Session, error)
	UpdateSession(ctx context.Context, sessionID uuid.UUID, in booking.SessionInput) (models.Session, error)
	GetAvailableSlots(ctx context.Context, tutorID uuid.UUID, from, to time.Time) ([]models.AvailabilitySlot, error)
}

type Handler struct {
	API       BackendAPI
	Flow      *booking.Lifecycle
	Slots     *cache.AvailabilityStore
	Lookahead time.Duration
	Log       *zap.Logger
}

func New(api BackendAPI, flow *booking.Lifecycle, slots *cache.AvailabilityStore, lookahead time.Duration, log *zap.Logger) *Handler {
	return &Handler{API: api, Flow: flow, Slots: slots, Lookahead: lookahead, Log: log}
}

func actorFromContext(c *fiber.Ctx) (models.Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return models.Actor{}, errors.New("request carries no auth token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Actor{}, errors.New("token claims have an unexpected shape")
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return models.Actor{}, errors.New("token has no user_id claim")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return models.Actor{}, err
	}
	role, _ := claims["role"].(string)
	return models.Actor{UserID: userID, Role: models.Role(role)}, nil
}

// respondError maps the lifecycle error taxonomy onto HTTP responses.
// CompensationFailure gets its own envelope: the booking is confirmed with
// no session and the gateway could not fix it, so "try again" is the wrong
// advice.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	var vErr *booking.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": vErr.Fields})
	}
	if errors.Is(err, booking.ErrSessionDetailsRequired) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var tErr *booking.InvalidTransitionError
	if errors.As(err, &tErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": tErr.Error()})
	}
	var compErr *booking.CompensationFailureError
	if errors.As(err, &compErr) {
		h.Log.Error("booking left confirmed without a session", zap.Error(compErr))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":            "The booking could not be fully confirmed and automatic recovery failed. Please contact support.",
			"support_required": true,
		})
	}
	var remote *booking.RemoteRejectionError
	if errors.As(err, &remote) {
		return c.Status(remote.StatusCode).JSON(fiber.Map{"error": remote.Message})
	}
	h.Log.Error("unexpected gateway error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong, please try again."})
}
