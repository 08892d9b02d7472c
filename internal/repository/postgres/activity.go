package postgres

import (
	"context"
	"errors"
	"fmt"

	"mergington-activities/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	selectActivitiesQuery = `SELECT name, description, schedule, max_participants FROM activities ORDER BY position`
	selectAllMembersQuery = `SELECT activity_name, email FROM participants ORDER BY id`
	selectActivityQuery   = `SELECT name, description, schedule, max_participants FROM activities WHERE name=$1`
	lockActivityQuery     = `SELECT max_participants FROM activities WHERE name=$1 FOR UPDATE`
	selectMembersQuery    = `SELECT email FROM participants WHERE activity_name=$1 ORDER BY id`
	memberExistsQuery     = `SELECT EXISTS (SELECT 1 FROM participants WHERE activity_name=$1 AND email=$2)`
	countMembersQuery     = `SELECT COUNT(*) FROM participants WHERE activity_name=$1`
	insertMemberQuery     = `INSERT INTO participants(activity_name, email) VALUES ($1,$2)`
	deleteMemberQuery     = `DELETE FROM participants WHERE activity_name=$1 AND email=$2`
)

// ListActivities returns all activities with rosters from one consistent snapshot.
func (p *Postgres) ListActivities(ctx context.Context) ([]entities.Activity, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, selectActivitiesQuery)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	activities := make([]entities.Activity, 0)
	index := make(map[string]int)
	for rows.Next() {
		a := entities.Activity{Participants: []string{}}
		if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		index[a.Name] = len(activities)
		activities = append(activities, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	memberRows, err := tx.Query(ctx, selectAllMembersQuery)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer memberRows.Close()
	for memberRows.Next() {
		var name, email string
		if err := memberRows.Scan(&name, &email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		if i, ok := index[name]; ok {
			activities[i].Participants = append(activities[i].Participants, email)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}

	return activities, nil
}

// AddParticipant locks the activity row, checks the roster and inserts email.
func (p *Postgres) AddParticipant(ctx context.Context, activityName, email string) (entities.Activity, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return entities.Activity{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	maxParticipants, err := lockActivity(ctx, tx, activityName)
	if err != nil {
		return entities.Activity{}, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, memberExistsQuery, activityName, email).Scan(&exists); err != nil {
		return entities.Activity{}, fmt.Errorf("check participant: %w", err)
	}
	if exists {
		return entities.Activity{}, entities.ErrAlreadySignedUp
	}

	var count int
	if err := tx.QueryRow(ctx, countMembersQuery, activityName).Scan(&count); err != nil {
		return entities.Activity{}, fmt.Errorf("count participants: %w", err)
	}
	if count >= maxParticipants {
		return entities.Activity{}, entities.ErrActivityFull
	}

	if _, err := tx.Exec(ctx, insertMemberQuery, activityName, email); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entities.Activity{}, entities.ErrAlreadySignedUp
		}
		p.log.Errorw("failed to insert participant", "error", err, "activity", activityName)
		return entities.Activity{}, fmt.Errorf("insert participant: %w", err)
	}

	a, err := loadActivity(ctx, tx, activityName)
	if err != nil {
		return entities.Activity{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return entities.Activity{}, err
	}
	return a, nil
}

// RemoveParticipant locks the activity row and deletes email from its roster.
func (p *Postgres) RemoveParticipant(ctx context.Context, activityName, email string) (entities.Activity, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return entities.Activity{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := lockActivity(ctx, tx, activityName); err != nil {
		return entities.Activity{}, err
	}

	tag, err := tx.Exec(ctx, deleteMemberQuery, activityName, email)
	if err != nil {
		p.log.Errorw("failed to delete participant", "error", err, "activity", activityName)
		return entities.Activity{}, fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.Activity{}, entities.ErrNotSignedUp
	}

	a, err := loadActivity(ctx, tx, activityName)
	if err != nil {
		return entities.Activity{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return entities.Activity{}, err
	}
	return a, nil
}

func lockActivity(ctx context.Context, tx pgx.Tx, name string) (int, error) {
	var maxParticipants int
	if err := tx.QueryRow(ctx, lockActivityQuery, name).Scan(&maxParticipants); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, entities.ErrActivityNotFound
		}
		return 0, fmt.Errorf("lock activity: %w", err)
	}
	return maxParticipants, nil
}

func loadActivity(ctx context.Context, tx pgx.Tx, name string) (entities.Activity, error) {
	a := entities.Activity{Participants: []string{}}
	if err := tx.QueryRow(ctx, selectActivityQuery, name).
		Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Activity{}, entities.ErrActivityNotFound
		}
		return entities.Activity{}, fmt.Errorf("get activity: %w", err)
	}

	rows, err := tx.Query(ctx, selectMembersQuery, name)
	if err != nil {
		return entities.Activity{}, fmt.Errorf("get participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return entities.Activity{}, fmt.Errorf("scan participant: %w", err)
		}
		a.Participants = append(a.Participants, email)
	}
	if err := rows.Err(); err != nil {
		return entities.Activity{}, fmt.Errorf("iterate participants: %w", err)
	}
	return a, nil
}
