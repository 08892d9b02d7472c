// Package memory implements the roster repository in process memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"mergington-activities/internal/entities"

	"go.uber.org/zap"
)

// roster guards one activity. Check-and-mutate happens under mu.
type roster struct {
	mu       sync.Mutex
	activity entities.Activity
}

// Memory holds the activity catalog. The set of activities is fixed at
// construction, so the index is read without locking.
type Memory struct {
	log   *zap.SugaredLogger
	order []string
	byKey map[string]*roster
}

// New creates a Memory repository holding a private copy of catalog.
func New(log *zap.SugaredLogger, catalog []entities.Activity) *Memory {
	m := &Memory{
		log:   log.Named("repo.memory"),
		order: make([]string, 0, len(catalog)),
		byKey: make(map[string]*roster, len(catalog)),
	}
	for _, a := range catalog {
		if _, dup := m.byKey[a.Name]; dup {
			continue
		}
		m.order = append(m.order, a.Name)
		m.byKey[a.Name] = &roster{activity: a.Clone()}
	}
	return m
}

// OnStart is a no-op; state lives only for the process lifetime.
func (m *Memory) OnStart(_ context.Context) error {
	m.log.Infow("memory roster ready", "activities", len(m.order))
	return nil
}

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error {
	return nil
}

// ListActivities returns a snapshot of every activity in catalog order.
func (m *Memory) ListActivities(_ context.Context) ([]entities.Activity, error) {
	out := make([]entities.Activity, 0, len(m.order))
	for _, name := range m.order {
		r := m.byKey[name]
		r.mu.Lock()
		out = append(out, r.activity.Clone())
		r.mu.Unlock()
	}
	return out, nil
}

// AddParticipant appends email to the activity roster.
func (m *Memory) AddParticipant(_ context.Context, activityName, email string) (entities.Activity, error) {
	r, ok := m.byKey[activityName]
	if !ok {
		return entities.Activity{}, entities.ErrActivityNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activity.Has(email) {
		return entities.Activity{}, entities.ErrAlreadySignedUp
	}
	if r.activity.Full() {
		return entities.Activity{}, entities.ErrActivityFull
	}
	r.activity.Participants = append(r.activity.Participants, email)
	return r.activity.Clone(), nil
}

// RemoveParticipant drops email from the activity roster.
func (m *Memory) RemoveParticipant(_ context.Context, activityName, email string) (entities.Activity, error) {
	r, ok := m.byKey[activityName]
	if !ok {
		return entities.Activity{}, entities.ErrActivityNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.activity.Participants, email)
	if idx < 0 {
		return entities.Activity{}, entities.ErrNotSignedUp
	}
	r.activity.Participants = slices.Delete(r.activity.Participants, idx, idx+1)
	return r.activity.Clone(), nil
}
