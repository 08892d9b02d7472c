package repository

import (
	"context"
	"testing"

	"mergington-activities/config"
	"mergington-activities/internal/entities"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop().Sugar()
	catalog := []entities.Activity{{Name: "Chess Club", MaxParticipants: 2}}

	repo, err := New(ctx, config.BackendMemory, log, &config.Config{}, catalog)
	require.NoError(t, err)
	require.NoError(t, repo.OnStart(ctx))

	activities, err := repo.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	_, err = New(ctx, "redis", log, &config.Config{}, catalog)
	require.EqualError(t, err, "unknown repo backend: redis")
}
