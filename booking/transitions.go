package booking

import "github.com/tutorhive/booking_gateway/models"

// transition is a single allowed edge in the booking status machine.
type transition struct {
	From models.Status
	To   models.Status
	Role models.Role

	// RequiresSession: a session must be created as part of the same
	// logical operation.
	RequiresSession bool
	// RequiresElapsed: the booking's end time must have passed.
	RequiresElapsed bool
}

var transitions = []transition{
	{From: models.StatusPending, To: models.StatusConfirmed, Role: models.RoleTutor, RequiresSession: true},
	{From: models.StatusPending, To: models.StatusRejected, Role: models.RoleTutor},
	{From: models.StatusPending, To: models.StatusCancelled, Role: models.RoleStudent},
	{From: models.StatusConfirmed, To: models.StatusCompleted, Role: models.RoleTutor, RequiresElapsed: true},
}

// transitionFor returns the edge for a given move, if one exists.
func transitionFor(from, to models.Status) (transition, bool) {
	for _, tr := range transitions {
		if tr.From == from && tr.To == to {
			return tr, true
		}
	}
	return transition{}, false
}
