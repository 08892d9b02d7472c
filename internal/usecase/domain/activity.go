// Package domain contains application Usecases orchestrating roster logic.
package domain

import (
	"context"

	"mergington-activities/internal/entities"
	"mergington-activities/internal/events"
	"mergington-activities/internal/observability"
)

// Activities returns every activity with its current roster.
func (u *Usecase) Activities(ctx context.Context) ([]entities.Activity, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	activities, err := u.repo.ListActivities(ctx)
	u.metrics.ObserveOperation(observability.OpList, err)
	if err != nil {
		u.log.Errorw("failed to list activities", "error", err)
		return nil, err
	}
	for _, a := range activities {
		u.metrics.ObserveActivity(a)
	}
	return activities, nil
}

// Signup adds email to the named activity.
func (u *Usecase) Signup(ctx context.Context, activityName, email string) (*entities.Enrollment, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	activity, err := u.repo.AddParticipant(ctx, activityName, email)
	u.metrics.ObserveOperation(observability.OpSignup, err)
	if err != nil {
		u.log.Infow("signup rejected", "activity", activityName, "email", email, "reason", err)
		return nil, err
	}

	res := &entities.Enrollment{Action: entities.ActionSignedUp, Email: email, Activity: activity}
	u.afterChange(ctx, *res)
	return res, nil
}

// Unregister removes email from the named activity.
func (u *Usecase) Unregister(ctx context.Context, activityName, email string) (*entities.Enrollment, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	activity, err := u.repo.RemoveParticipant(ctx, activityName, email)
	u.metrics.ObserveOperation(observability.OpUnregister, err)
	if err != nil {
		u.log.Infow("unregister rejected", "activity", activityName, "email", email, "reason", err)
		return nil, err
	}

	res := &entities.Enrollment{Action: entities.ActionUnregistered, Email: email, Activity: activity}
	u.afterChange(ctx, *res)
	return res, nil
}

// afterChange records a committed roster change. Publish failures are logged
// and never fail the operation.
func (u *Usecase) afterChange(ctx context.Context, e entities.Enrollment) {
	u.metrics.ObserveActivity(e.Activity)
	u.log.Infow("roster changed", "action", e.Action, "activity", e.Activity.Name, "email", e.Email,
		"participants", len(e.Activity.Participants))

	if err := u.publisher.Publish(ctx, events.FromEnrollment(e, u.now())); err != nil {
		u.log.Warnw("failed to publish roster event", "error", err, "activity", e.Activity.Name)
	}
}
