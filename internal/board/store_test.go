package board

import (
	"context"
	"errors"
	"testing"

	"github.com/tgienger/kanban/internal/models"
)

type stubSaver struct {
	saves [][]models.Task
	err   error
}

func (s *stubSaver) Save(_ context.Context, tasks []models.Task) error {
	s.saves = append(s.saves, tasks)
	return s.err
}

type stubLoader struct {
	tasks []models.Task
	ok    bool
}

func (l stubLoader) Load(context.Context) ([]models.Task, bool) {
	return l.tasks, l.ok
}

func TestStoreSavesOnTaskChangesOnly(t *testing.T) {
	t.Parallel()

	saver := &stubSaver{}
	store := NewStore(testEnv(), saver)

	store.Dispatch(ToggleModal{Show: true})
	store.Dispatch(SetEditingTask{ID: "1"})
	store.Dispatch(SetDraggedTask{ID: "1"})
	if len(saver.saves) != 0 {
		t.Fatalf("Expected no saves for UI state, got %d", len(saver.saves))
	}

	store.Dispatch(MoveTask{TaskID: "1", NewStatus: models.StatusDone})
	if len(saver.saves) != 1 {
		t.Fatalf("Expected 1 save, got %d", len(saver.saves))
	}
	if saver.saves[0][0].Status != models.StatusDone {
		t.Errorf("Expected saved snapshot to carry the move, got %+v", saver.saves[0][0])
	}

	// A rejected move changes nothing and must not save.
	store.Dispatch(MoveTask{TaskID: "1", NewStatus: "bogus"})
	if len(saver.saves) != 1 {
		t.Errorf("Expected no save for a no-op, got %d", len(saver.saves))
	}
}

func TestStoreSaveFailureKeepsSessionAlive(t *testing.T) {
	t.Parallel()

	saver := &stubSaver{err: errors.New("quota exceeded")}
	store := NewStore(testEnv(), saver)

	st := store.Dispatch(AddTask{Fields: models.TaskFields{Title: "X"}})
	if len(st.Tasks) != 4 {
		t.Fatalf("Expected in-memory state to advance, got %d tasks", len(st.Tasks))
	}
	if store.Err() == nil {
		t.Fatal("Expected save error to be reported")
	}

	saver.err = nil
	store.Dispatch(DeleteTask{ID: "1"})
	if store.Err() != nil {
		t.Errorf("Expected error cleared after a good save, got %v", store.Err())
	}
}

func TestStoreHydrate(t *testing.T) {
	t.Parallel()

	saver := &stubSaver{}
	store := NewStore(testEnv(), saver)

	persisted := []models.Task{{ID: "p1", Title: "Persisted", Status: models.StatusInProgress}}
	if !store.Hydrate(context.Background(), stubLoader{tasks: persisted, ok: true}) {
		t.Fatal("Expected hydrate to succeed")
	}
	if got := store.State().Tasks; len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("Expected persisted tasks, got %+v", got)
	}
	if len(saver.saves) != 0 {
		t.Errorf("Expected hydrate not to write back, got %d saves", len(saver.saves))
	}
}

func TestStoreHydrateKeepsSeedsWhenAbsent(t *testing.T) {
	t.Parallel()

	for _, loader := range []Loader{
		nil,
		stubLoader{ok: false},
		stubLoader{tasks: []models.Task{}, ok: true},
	} {
		saver := &stubSaver{}
		store := NewStore(testEnv(), saver)
		if store.Hydrate(context.Background(), loader) {
			t.Errorf("Expected hydrate to report nothing loaded for %#v", loader)
		}
		if len(store.State().Tasks) != 3 {
			t.Errorf("Expected seeded tasks, got %d", len(store.State().Tasks))
		}

		// Seeds are persisted on the first change.
		store.Dispatch(DeleteTask{ID: "3"})
		if len(saver.saves) != 1 || len(saver.saves[0]) != 2 {
			t.Errorf("Expected first change to persist the seeded board, got %+v", saver.saves)
		}
	}
}

func TestStoreWithoutSaver(t *testing.T) {
	t.Parallel()

	store := NewStore(testEnv(), nil)
	store.Dispatch(AddTask{Fields: models.TaskFields{Title: "X"}})
	if store.Err() != nil {
		t.Errorf("Expected no error, got %v", store.Err())
	}
}

func TestStoreResolve(t *testing.T) {
	t.Parallel()

	store := NewStore(testEnv(), nil)
	store.Dispatch(LoadTasks{Tasks: []models.Task{
		{ID: "abc123"}, {ID: "abd456"}, {ID: "1"},
	}})

	if got, err := store.Resolve("abc"); err != nil || got.ID != "abc123" {
		t.Errorf("Expected prefix match, got %+v, %v", got, err)
	}
	if got, err := store.Resolve("1"); err != nil || got.ID != "1" {
		t.Errorf("Expected exact match, got %+v, %v", got, err)
	}
	if _, err := store.Resolve("ab"); err == nil {
		t.Error("Expected ambiguous prefix to fail")
	}
	if _, err := store.Resolve("zzz"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}
