package booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tutorhive/booking_gateway/models"
)

// ErrSessionDetailsRequired is returned when a confirm is requested without
// the session details that must be created alongside it.
var ErrSessionDetailsRequired = errors.New("session details are required to confirm a booking")

// InvalidTransitionError means the requested status change is not reachable
// from the booking's current status, or the actor is not allowed to request
// it. No network call has been made when this is returned; the caller
// likely holds stale state and should re-fetch.
type InvalidTransitionError struct {
	From   models.Status
	To     models.Status
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot move booking from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

// ValidationError carries one message per invalid field so callers can show
// per-field errors instead of a single aggregate message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("session validation failed on %d field(s)", len(e.Fields))
}

// RemoteRejectionError is a non-success response from the backend for a
// transition or session call. Message is the backend's text verbatim.
type RemoteRejectionError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteRejectionError) Error() string {
	return fmt.Sprintf("%s rejected by backend (%d): %s", e.Op, e.StatusCode, e.Message)
}

// CompensationFailureError is the one fatal case in the confirm saga:
// session creation failed and the compensating revert to pending also
// failed, leaving the booking confirmed with no session. Callers must
// surface this distinctly so the user is told to contact support rather
// than simply retry.
type CompensationFailureError struct {
	BookingID  uuid.UUID
	SessionErr error
	RevertErr  error
}

func (e *CompensationFailureError) Error() string {
	return fmt.Sprintf("booking %s is confirmed without a session: session creation failed (%v) and the revert to pending failed (%v)",
		e.BookingID, e.SessionErr, e.RevertErr)
}

func (e *CompensationFailureError) Unwrap() error { return e.SessionErr }
