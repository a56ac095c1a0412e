package booking

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tutorhive/booking_gateway/models"
)

var validate = validator.New()

// SessionInput is the payload submitted when creating or updating the
// session attached to a booking.
type SessionInput struct {
	BookingID     uuid.UUID `json:"booking_id"`
	VideoCallLink string    `json:"video_call_link" validate:"required,url"`
	SessionNotes  string    `json:"session_notes" validate:"required,min=10"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// ValidateSessionWindow checks a session payload against its parent
// booking before any network call is made. The session must fit inside the
// booking window; the backend re-validates the same rules, this is the
// fast-fail path. Failures come back as a ValidationError with one message
// per offending field.
func ValidateSessionWindow(in SessionInput, b models.Booking) error {
	fields := make(map[string]string)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "VideoCallLink":
				if fe.Tag() == "required" {
					fields["video_call_link"] = "video call link is required"
				} else {
					fields["video_call_link"] = "video call link must be a valid URL"
				}
			case "SessionNotes":
				fields["session_notes"] = "session notes must be at least 10 characters"
			}
		}
	}

	if in.StartTime.IsZero() {
		fields["start_time"] = "start time is required"
	} else if in.StartTime.Before(b.StartTime) {
		fields["start_time"] = "session cannot start before the booking starts"
	}

	switch {
	case in.EndTime.IsZero():
		fields["end_time"] = "end time is required"
	case in.EndTime.After(b.EndTime):
		fields["end_time"] = "session cannot end after the booking ends"
	case !in.StartTime.IsZero() && !in.EndTime.After(in.StartTime):
		fields["end_time"] = "end time must be after start time"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
