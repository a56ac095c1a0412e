package booking

import (
	"time"

	"github.com/tutorhive/booking_gateway/models"
)

// These predicates decide what a caller may offer the user. They are
// affordance checks, not authorization: the backend remains the arbiter of
// every actual transition.

func CanConfirmOrReject(b models.Booking, actor models.Actor) bool {
	return b.Status == models.StatusPending && isBookingTutor(b, actor)
}

func CanCancel(b models.Booking, actor models.Actor) bool {
	return b.Status == models.StatusPending && isBookingStudent(b, actor)
}

func CanComplete(b models.Booking, actor models.Actor, now time.Time) bool {
	return b.Status == models.StatusConfirmed && isBookingTutor(b, actor) && !now.Before(b.EndTime)
}

func NeedsSessionCreation(b models.Booking, session *models.Session) bool {
	return b.Status == models.StatusConfirmed && session == nil
}

func CanEditSession(b models.Booking, session *models.Session, actor models.Actor) bool {
	if session == nil || !isBookingTutor(b, actor) {
		return false
	}
	return b.Status == models.StatusConfirmed || b.Status == models.StatusCompleted
}

// IsReviewable reports whether a review can still be left. Review
// existence is an external fact the caller injects.
func IsReviewable(b models.Booking, hasReview bool) bool {
	return b.Status == models.StatusCompleted && !hasReview
}

func isBookingTutor(b models.Booking, actor models.Actor) bool {
	return actor.Role == models.RoleTutor && actor.UserID == b.TutorID
}

func isBookingStudent(b models.Booking, actor models.Actor) bool {
	return actor.Role == models.RoleStudent && actor.UserID == b.StudentID
}
