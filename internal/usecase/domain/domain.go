package domain

import (
	"context"
	"time"

	"mergington-activities/internal/events"
	"mergington-activities/internal/observability"
	"mergington-activities/internal/repository"

	"go.uber.org/zap"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	log       *zap.SugaredLogger
	repo      repository.Repository
	publisher events.Publisher
	metrics   *observability.Metrics
	timeout   time.Duration
	now       func() time.Time
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	repo repository.Repository,
	publisher events.Publisher,
	metrics *observability.Metrics,
	timeout time.Duration,
) *Usecase {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Usecase{
		log:       log.Named("usecase"),
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		timeout:   timeout,
		now:       time.Now,
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
