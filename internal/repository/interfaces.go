// Package repository contains repository interfaces for roster storage.
package repository

import (
	"context"

	"mergington-activities/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// ActivityInterface exposes roster operations. Each mutating call checks and
// mutates one activity atomically and returns the roster as it stands afterwards.
type ActivityInterface interface {
	ListActivities(ctx context.Context) ([]entities.Activity, error)
	AddParticipant(ctx context.Context, activityName, email string) (entities.Activity, error)
	RemoveParticipant(ctx context.Context, activityName, email string) (entities.Activity, error)
}
