package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhive/booking_gateway/models"
)

// BackendAPI is the slice of the marketplace backend the lifecycle drives.
// The backend is authoritative: it may reject any of these calls even when
// the local transition table allowed them.
type BackendAPI interface {
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status models.Status) (models.Booking, error)
	CreateSession(ctx context.Context, in SessionInput) (models.Session, error)
}

// Phase is where a transition stopped. For simple transitions the only
// terminal phase is done; the confirm saga additionally exposes its
// compensation phases so a partial failure is observable, not buried.
type Phase string

const (
	PhaseConfirming      Phase = "confirming"
	PhaseCreatingSession Phase = "creating_session"
	PhaseReverting       Phase = "reverting"
	PhaseDone            Phase = "done"
	PhaseFailed          Phase = "failed"
)

// TransitionRequest names the target status, who is asking, and, for the
// confirm path, the session to create alongside it.
type TransitionRequest struct {
	Target  models.Status
	Actor   models.Actor
	Session *SessionInput
}

// TransitionResult is the outcome of a transition request. Session is set
// only on a successful confirm.
type TransitionResult struct {
	Booking models.Booking
	Session *models.Session
	Phase   Phase
}

// Lifecycle owns the client-side booking status machine. It holds no state
// of its own: bookings are passed in, requests go sequentially to the
// backend, and new data comes back.
type Lifecycle struct {
	api BackendAPI
	log *zap.Logger
	now func() time.Time
}

func New(api BackendAPI, log *zap.Logger) *Lifecycle {
	return &Lifecycle{api: api, log: log, now: time.Now}
}

// RequestTransition moves a booking toward target if the transition table
// permits it for this actor. Illegal requests fail locally with zero
// network calls. Pending -> confirmed is the two-phase path: the status
// change and the session creation are one logical operation, compensated
// by a revert to pending if the second phase fails.
func (l *Lifecycle) RequestTransition(ctx context.Context, b models.Booking, req TransitionRequest) (TransitionResult, error) {
	if _, err := models.ParseStatus(string(req.Target)); err != nil {
		return TransitionResult{}, &InvalidTransitionError{From: b.Status, To: req.Target, Reason: "unknown target status"}
	}

	edge, ok := transitionFor(b.Status, req.Target)
	if !ok {
		return TransitionResult{}, &InvalidTransitionError{From: b.Status, To: req.Target}
	}
	if reason := actorMismatch(b, edge, req.Actor); reason != "" {
		return TransitionResult{}, &InvalidTransitionError{From: b.Status, To: req.Target, Reason: reason}
	}
	if edge.RequiresElapsed && l.now().Before(b.EndTime) {
		return TransitionResult{}, &InvalidTransitionError{From: b.Status, To: req.Target, Reason: "booking has not ended yet"}
	}

	if edge.RequiresSession {
		if req.Session == nil {
			return TransitionResult{}, ErrSessionDetailsRequired
		}
		return l.confirm(ctx, b, *req.Session)
	}

	updated, err := l.api.UpdateBookingStatus(ctx, b.ID, req.Target)
	if err != nil {
		return TransitionResult{Phase: PhaseFailed}, err
	}
	return TransitionResult{Booking: updated, Phase: PhaseDone}, nil
}

// confirm runs the two-phase confirm saga. The booking must never be left
// confirmed without a session: if session creation fails after the backend
// committed the confirm, the saga requests pending back before reporting
// the original error.
func (l *Lifecycle) confirm(ctx context.Context, b models.Booking, in SessionInput) (TransitionResult, error) {
	in.BookingID = b.ID
	if err := ValidateSessionWindow(in, b); err != nil {
		return TransitionResult{}, err
	}

	confirmed, err := l.api.UpdateBookingStatus(ctx, b.ID, models.StatusConfirmed)
	if err != nil {
		return TransitionResult{Phase: PhaseConfirming}, err
	}

	session, sessErr := l.api.CreateSession(ctx, in)
	if sessErr == nil {
		return TransitionResult{Booking: confirmed, Session: &session, Phase: PhaseDone}, nil
	}

	l.log.Warn("session creation failed, reverting booking to pending",
		zap.String("booking_id", b.ID.String()),
		zap.Error(sessErr),
	)
	reverted, revertErr := l.api.UpdateBookingStatus(ctx, b.ID, models.StatusPending)
	if revertErr != nil {
		l.log.Error("compensating revert failed, booking is confirmed without a session",
			zap.String("booking_id", b.ID.String()),
			zap.Error(revertErr),
		)
		return TransitionResult{Booking: confirmed, Phase: PhaseFailed},
			&CompensationFailureError{BookingID: b.ID, SessionErr: sessErr, RevertErr: revertErr}
	}
	return TransitionResult{Booking: reverted, Phase: PhaseReverting}, sessErr
}

func actorMismatch(b models.Booking, edge transition, actor models.Actor) string {
	switch edge.Role {
	case models.RoleTutor:
		if actor.Role != models.RoleTutor || actor.UserID != b.TutorID {
			return "requester is not the booking's tutor"
		}
	case models.RoleStudent:
		if actor.Role != models.RoleStudent || actor.UserID != b.StudentID {
			return "requester is not the booking's student"
		}
	}
	return ""
}
