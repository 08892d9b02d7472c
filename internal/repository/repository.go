// Package repository provides factory for repositories.
package repository

import (
	"context"
	"fmt"

	"mergington-activities/config"
	"mergington-activities/internal/entities"
	"mergington-activities/internal/repository/memory"
	"mergington-activities/internal/repository/postgres"

	"go.uber.org/zap"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	LifecycleInterface
	ActivityInterface
}

// New constructs repository backend by name, seeded with catalog.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config, catalog []entities.Activity) (Repository, error) {
	switch name {
	case config.BackendMemory:
		return memory.New(log, catalog), nil
	case config.BackendPostgres:
		return postgres.New(ctx, log, cfg, catalog), nil
	default:
		return nil, fmt.Errorf("unknown repo backend: %s", name)
	}
}
