package workflow

import (
	"slices"

	"unimitr-backend/internal/domain"
)

// Definition describes one content domain to the generic engine.
type Definition struct {
	Kind          domain.Kind
	InitialStatus domain.Status
	// Statuses is the set a resource of this kind may hold.
	Statuses []domain.Status
	// ResourceTransitions maps each admin endpoint to the status it writes.
	ResourceTransitions map[domain.Transition]domain.Status
	ActionTransitions   map[domain.Transition]domain.Status
	// PhoneOptional relaxes the phone requirement on submitted actions.
	PhoneOptional bool
}

func (d Definition) HasStatus(s domain.Status) bool {
	return slices.Contains(d.Statuses, s)
}

// terminal statuses only accept a repeat of the transition that produced them
// when strict transitions are enabled.
var terminal = map[domain.Status]bool{
	domain.StatusRejected:  true,
	domain.StatusClosed:    true,
	domain.StatusCompleted: true,
	domain.StatusAttended:  true,
}

// allowed reports whether a record in from may be overwritten with to.
func allowed(from, to domain.Status, strict bool) bool {
	if !strict || !terminal[from] {
		return true
	}
	return from == to
}
