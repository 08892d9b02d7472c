// Package postgres implements the repository against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"mergington-activities/config"
	"mergington-activities/db"
	"mergington-activities/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const (
	truncateQuery         = `TRUNCATE participants, activities RESTART IDENTITY`
	insertActivityQuery   = `INSERT INTO activities(name, position, description, schedule, max_participants) VALUES ($1,$2,$3,$4,$5)`
	insertSeedMemberQuery = `INSERT INTO participants(activity_name, email) VALUES ($1,$2)`
)

// Postgres wraps a pgx pool and configuration.
type Postgres struct {
	baseCtx context.Context
	log     *zap.SugaredLogger
	db      *pgxpool.Pool
	cfg     config.PostgresConfig
	catalog []entities.Activity
}

// New creates a Postgres repository instance that reseeds catalog on start.
func New(ctx context.Context, log *zap.SugaredLogger, cfg *config.Config, catalog []entities.Activity) *Postgres {
	return &Postgres{
		baseCtx: ctx,
		log:     log.Named("repo.postgres"),
		cfg:     cfg.Postgres,
		catalog: catalog,
	}
}

// OnStart establishes connection pool, applies migrations and resets the
// roster tables to the seed catalog.
func (p *Postgres) OnStart(_ context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(p.cfg.DSN())
	if err != nil {
		return fmt.Errorf("parse pool config: %w", err)
	}
	poolCfg.MaxConns = p.cfg.MaxConns
	poolCfg.MinConns = p.cfg.MinConns

	connectCtx, cancelConnect := context.WithTimeout(p.baseCtx, p.cfg.QueryTimeout)
	defer cancelConnect()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return fmt.Errorf("ping pool: %w", err)
	}

	if err := p.migrate(); err != nil {
		pool.Close()
		return err
	}

	seedCtx, cancelSeed := context.WithTimeout(p.baseCtx, p.cfg.MigrateTimeout)
	defer cancelSeed()

	if err := reseed(seedCtx, pool, p.catalog); err != nil {
		pool.Close()
		return err
	}

	p.db = pool
	p.log.Infow("postgres ready", "host", p.cfg.Host, "port", p.cfg.Port, "activities", len(p.catalog))
	return nil
}

// OnStop closes pool connections.
func (p *Postgres) OnStop(_ context.Context) error {
	if p.db != nil {
		p.db.Close()
	}
	return nil
}

func (p *Postgres) migrate() error {
	sqlDB, err := sql.Open("postgres", p.cfg.DSN())
	if err != nil {
		return fmt.Errorf("open sql: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	migrateCtx, cancelMigrate := context.WithTimeout(p.baseCtx, p.cfg.MigrateTimeout)
	defer cancelMigrate()

	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate dialect: %w", err)
	}
	if err := goose.UpContext(migrateCtx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if _, err := goose.EnsureDBVersion(sqlDB); err != nil {
		return fmt.Errorf("migrate version: %w", err)
	}
	return nil
}

// reseed replaces roster tables with catalog so every start begins from the seed.
func reseed(ctx context.Context, pool *pgxpool.Pool, catalog []entities.Activity) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, truncateQuery); err != nil {
		return fmt.Errorf("seed truncate: %w", err)
	}
	for i, a := range catalog {
		if _, err := tx.Exec(ctx, insertActivityQuery, a.Name, i, a.Description, a.Schedule, a.MaxParticipants); err != nil {
			return fmt.Errorf("seed activity %q: %w", a.Name, err)
		}
		for _, email := range a.Participants {
			if _, err := tx.Exec(ctx, insertSeedMemberQuery, a.Name, email); err != nil {
				return fmt.Errorf("seed participant %q: %w", a.Name, err)
			}
		}
	}
	return tx.Commit(ctx)
}
