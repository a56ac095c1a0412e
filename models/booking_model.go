package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the closed set of booking states owned by the marketplace
// backend. The gateway never invents new values and rejects anything
// outside this set at the boundary.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// ParseStatus validates a raw status string from the wire. Legacy numeric
// status codes are deliberately not accepted; a backend that emits them
// should fail loudly here rather than be silently normalized.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// Terminal reports whether no further transition can leave this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// PaymentStatus is an independent axis from Status.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Booking struct {
	ID            uuid.UUID     `json:"id"`
	StudentID     uuid.UUID     `json:"student_id"`
	TutorID       uuid.UUID     `json:"tutor_id"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	Status        Status        `json:"status"`
	Topic         string        `json:"topic"`
	Description   *string       `json:"description,omitempty"`
	SkillID       *uuid.UUID    `json:"skill_id,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
