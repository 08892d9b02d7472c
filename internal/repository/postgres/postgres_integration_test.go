package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mergington-activities/config"
	"mergington-activities/internal/entities"
	"mergington-activities/internal/seed"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	repo := startRepo(t)

	activities, err := repo.ListActivities(ctx)
	require.NoError(t, err)
	catalog, err := seed.Default()
	require.NoError(t, err)
	require.Equal(t, catalog, activities)

	soccer, err := repo.AddParticipant(ctx, "Soccer Team", "newstudent@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, "newstudent@mergington.edu", soccer.Participants[len(soccer.Participants)-1])

	_, err = repo.AddParticipant(ctx, "Soccer Team", "newstudent@mergington.edu")
	require.ErrorIs(t, err, entities.ErrAlreadySignedUp)

	_, err = repo.AddParticipant(ctx, "NonExistentActivity", "student@mergington.edu")
	require.ErrorIs(t, err, entities.ErrActivityNotFound)

	soccer, err = repo.RemoveParticipant(ctx, "Soccer Team", "alex@mergington.edu")
	require.NoError(t, err)
	require.NotContains(t, soccer.Participants, "alex@mergington.edu")

	_, err = repo.RemoveParticipant(ctx, "Soccer Team", "alex@mergington.edu")
	require.ErrorIs(t, err, entities.ErrNotSignedUp)

	_, err = repo.RemoveParticipant(ctx, "NonExistentActivity", "alex@mergington.edu")
	require.ErrorIs(t, err, entities.ErrActivityNotFound)
}

func TestRepositoryCapacityIntegration(t *testing.T) {
	ctx := context.Background()
	repo := startRepo(t)

	var ok, full atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AddParticipant(ctx, "Drama Club", fmt.Sprintf("student%d@mergington.edu", i))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, entities.ErrActivityFull):
				full.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 13, ok.Load())
	require.EqualValues(t, 27, full.Load())

	activities, err := repo.ListActivities(ctx)
	require.NoError(t, err)
	for _, a := range activities {
		if a.Name == "Drama Club" {
			require.Len(t, a.Participants, a.MaxParticipants)
		}
	}
}

func TestRepositoryReseedsOnStart(t *testing.T) {
	ctx := context.Background()
	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	catalog, err := seed.Default()
	require.NoError(t, err)

	first := New(ctx, testLogger(t), cfg, catalog)
	require.NoError(t, first.OnStart(ctx))
	_, err = first.AddParticipant(ctx, "Chess Club", "restart@mergington.edu")
	require.NoError(t, err)
	require.NoError(t, first.OnStop(ctx))

	second := New(ctx, testLogger(t), cfg, catalog)
	require.NoError(t, second.OnStart(ctx))
	t.Cleanup(func() { _ = second.OnStop(ctx) })

	activities, err := second.ListActivities(ctx)
	require.NoError(t, err)
	require.Equal(t, catalog, activities)
}

func startRepo(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	catalog, err := seed.Default()
	require.NoError(t, err)

	repo := New(ctx, testLogger(t), cfg, catalog)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })
	return repo
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in short mode")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=mergington_activities_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)

	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:    config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Storage: config.StorageConfig{Backend: config.BackendPostgres},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "mergington_activities_db",
			SSLMode:        "disable",
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       8,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
