// Package events publishes roster change notifications.
package events

import (
	"context"
	"time"

	"mergington-activities/internal/entities"
)

// RosterChanged is emitted after a successful signup or unregister.
type RosterChanged struct {
	Type            string    `json:"type"`
	Activity        string    `json:"activity"`
	Email           string    `json:"email"`
	Participants    int       `json:"participants"`
	MaxParticipants int       `json:"max_participants"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// FromEnrollment builds the event for a confirmed roster transition.
func FromEnrollment(e entities.Enrollment, at time.Time) RosterChanged {
	return RosterChanged{
		Type:            string(e.Action),
		Activity:        e.Activity.Name,
		Email:           e.Email,
		Participants:    len(e.Activity.Participants),
		MaxParticipants: e.Activity.MaxParticipants,
		OccurredAt:      at.UTC(),
	}
}

// Publisher delivers roster events.
type Publisher interface {
	Publish(ctx context.Context, evt RosterChanged) error
	Close() error
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, RosterChanged) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }
