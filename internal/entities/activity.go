// Package entities contains core business entities.
package entities

import "slices"

// Activity is an extracurricular offering with a capacity-bounded roster.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	// Participants holds emails in signup order.
	Participants []string
}

// Clone returns a copy that does not share the participant slice.
func (a Activity) Clone() Activity {
	a.Participants = slices.Clone(a.Participants)
	if a.Participants == nil {
		a.Participants = []string{}
	}
	return a
}

// Has reports whether email is on the roster.
func (a Activity) Has(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Full reports whether the roster reached capacity.
func (a Activity) Full() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// SpotsLeft returns the remaining capacity.
func (a Activity) SpotsLeft() int {
	if a.Full() {
		return 0
	}
	return a.MaxParticipants - len(a.Participants)
}
