package usecase

import (
	"time"

	"mergington-activities/internal/events"
	"mergington-activities/internal/observability"
	"mergington-activities/internal/repository"
	"mergington-activities/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	ActivityUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	repo repository.Repository,
	publisher events.Publisher,
	metrics *observability.Metrics,
	timeout time.Duration,
) InterfaceUsecase {
	return domain.New(log, repo, publisher, metrics, timeout)
}
