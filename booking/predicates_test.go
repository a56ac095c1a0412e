package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tutorhive/booking_gateway/models"
)

func TestAffordancePredicates(t *testing.T) {
	pending, tutor, student := testBooking(models.StatusPending)
	stranger := models.Actor{UserID: uuid.New(), Role: models.RoleTutor}

	confirmed := pending
	confirmed.Status = models.StatusConfirmed
	completed := pending
	completed.Status = models.StatusCompleted

	session := &models.Session{ID: uuid.New(), BookingID: pending.ID}

	if !CanConfirmOrReject(pending, tutor) {
		t.Error("tutor should be offered confirm/reject on a pending booking")
	}
	if CanConfirmOrReject(pending, student) || CanConfirmOrReject(pending, stranger) {
		t.Error("only the booking's tutor may be offered confirm/reject")
	}
	if CanConfirmOrReject(confirmed, tutor) {
		t.Error("confirm/reject is only offered while pending")
	}

	if !CanCancel(pending, student) {
		t.Error("student should be offered cancel on a pending booking")
	}
	if CanCancel(pending, tutor) || CanCancel(confirmed, student) {
		t.Error("cancel is offered to the student of a pending booking only")
	}

	if !CanComplete(confirmed, tutor, confirmed.EndTime) {
		t.Error("tutor should be offered complete once the booking has ended")
	}
	if CanComplete(confirmed, tutor, confirmed.EndTime.Add(-time.Minute)) {
		t.Error("complete must not be offered before the booking ends")
	}
	if CanComplete(pending, tutor, pending.EndTime) || CanComplete(confirmed, student, confirmed.EndTime) {
		t.Error("complete is offered to the tutor of a confirmed booking only")
	}

	if !NeedsSessionCreation(confirmed, nil) {
		t.Error("a confirmed booking with no session needs one")
	}
	if NeedsSessionCreation(confirmed, session) || NeedsSessionCreation(pending, nil) {
		t.Error("session creation is needed only while confirmed and sessionless")
	}

	if !CanEditSession(confirmed, session, tutor) || !CanEditSession(completed, session, tutor) {
		t.Error("the tutor may edit an existing session while confirmed or completed")
	}
	if CanEditSession(confirmed, nil, tutor) || CanEditSession(confirmed, session, student) {
		t.Error("editing requires an existing session and the owning tutor")
	}
	if CanEditSession(pending, session, tutor) {
		t.Error("editing is not offered on a pending booking")
	}

	if !IsReviewable(completed, false) {
		t.Error("a completed booking without a review is reviewable")
	}
	if IsReviewable(completed, true) || IsReviewable(confirmed, false) {
		t.Error("reviewable requires completed status and no existing review")
	}
}
