package models

import "github.com/google/uuid"

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

// Actor is the authenticated user on whose behalf a request is made. The
// gateway uses it for advisory checks only; the backend re-validates
// authority on every mutation.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}
