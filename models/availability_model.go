package models

import "github.com/google/uuid"

// AvailabilitySlot is one slot as serialized by the backend. Start and end
// stay raw RFC3339 strings on purpose: upstream data occasionally arrives
// malformed, and the projection keeps such slots visible instead of
// dropping them, so the model must be able to carry the broken value.
type AvailabilitySlot struct {
	ID                uuid.UUID `json:"id"`
	TutorID           uuid.UUID `json:"tutor_id"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	IsBooked          bool      `json:"is_booked"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurringDay      string    `json:"recurring_day,omitempty"`
	RecurrenceEndDate *string   `json:"recurrence_end_date,omitempty"`
}
