package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tgienger/kanban/internal/models"
)

// ErrTaskNotFound is returned by lookups for ids not on the board
var ErrTaskNotFound = errors.New("task not found")

// Saver persists the full task collection
type Saver interface {
	Save(ctx context.Context, tasks []models.Task) error
}

// Loader reads a previously persisted task collection. ok is false when
// nothing usable was stored.
type Loader interface {
	Load(ctx context.Context) (tasks []models.Task, ok bool)
}

// Store owns the board state. Every mutation goes through Dispatch, which
// applies the reducer and then saves the task collection if it changed.
type Store struct {
	mu          sync.Mutex
	env         Env
	state       State
	saver       Saver
	saveTimeout time.Duration
	flushed     uint64
	err         error
}

// NewStore creates a store seeded with the sample tasks. saver may be nil,
// in which case the board lives in memory only.
func NewStore(env Env, saver Saver) *Store {
	return &Store{
		env:         env,
		state:       InitialState(clock(env)),
		saver:       saver,
		saveTimeout: 5 * time.Second,
	}
}

// Hydrate replaces the seeded tasks with the persisted ones when there are
// any. It does not write anything back.
func (s *Store) Hydrate(ctx context.Context, loader Loader) bool {
	if loader == nil {
		return false
	}
	tasks, ok := loader.Load(ctx)
	if !ok || len(tasks) == 0 {
		log.Debug("no persisted tasks, keeping seeded board")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Apply(s.env, s.state, LoadTasks{Tasks: tasks})
	s.flushed = s.state.Revision
	log.WithField("tasks", len(tasks)).Debug("hydrated board")
	return true
}

// Dispatch applies a and returns the new state. Transitions run in the order
// they are dispatched; a save happens before Dispatch returns.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Apply(s.env, s.state, a)
	if s.state.Revision != s.flushed {
		s.flush()
	}
	return s.state
}

func (s *Store) flush() {
	s.flushed = s.state.Revision
	if s.saver == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()
	if err := s.saver.Save(ctx, s.state.Tasks); err != nil {
		s.err = fmt.Errorf("save board: %w", err)
		log.WithError(err).WithField("revision", s.state.Revision).Error("failed to persist tasks")
		return
	}
	s.err = nil
}

// State returns the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Columns returns the configured column set
func (s *Store) Columns() models.Columns {
	return s.env.Columns
}

// Err returns the error of the last save, or nil if it succeeded
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Resolve finds a task by full id or unique id prefix
func (s *Store) Resolve(ref string) (models.Task, error) {
	st := s.State()
	if t, ok := st.Task(ref); ok {
		return t, nil
	}
	var match *models.Task
	for i := range st.Tasks {
		if ref != "" && len(st.Tasks[i].ID) > len(ref) && st.Tasks[i].ID[:len(ref)] == ref {
			if match != nil {
				return models.Task{}, fmt.Errorf("%q is ambiguous", ref)
			}
			match = &st.Tasks[i]
		}
	}
	if match == nil {
		return models.Task{}, fmt.Errorf("%q: %w", ref, ErrTaskNotFound)
	}
	return *match, nil
}
