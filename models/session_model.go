package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the meeting record attached to a confirmed booking. The
// backend creates at most one per booking.
type Session struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	VideoCallLink string    `json:"video_call_link"`
	SessionNotes  string    `json:"session_notes"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
