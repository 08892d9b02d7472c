package usecase

import (
	"context"

	"mergington-activities/internal/entities"
)

// ActivityUsecaseInterface abstracts roster operations for delivery layer.
type ActivityUsecaseInterface interface {
	Activities(ctx context.Context) ([]entities.Activity, error)
	Signup(ctx context.Context, activityName, email string) (*entities.Enrollment, error)
	Unregister(ctx context.Context, activityName, email string) (*entities.Enrollment, error)
}
