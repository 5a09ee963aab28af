package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tgienger/kanban/internal/models"
)

type mapKV struct {
	values map[string]string
	getErr error
	setErr error
}

func newMapKV() *mapKV { return &mapKV{values: map[string]string{}} }

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapKV) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mapKV) Close() error { return nil }

func sampleTasks() []models.Task {
	created := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	return []models.Task{
		{
			ID: "1", Title: "Design new landing page", Description: "wireframes",
			Status: models.StatusTodo, Priority: models.PriorityLow, Assignee: "John Doe",
			Tags: []string{"Design", "UI/UX"}, CreatedAt: created,
		},
		{
			ID: "b7a3", Title: "Ship", Description: "",
			Status: models.StatusDone, Priority: models.PriorityHigh, Assignee: "Jane Smith",
			Tags: []string{}, CreatedAt: created.Add(time.Hour),
		},
	}
}

func assertTasksEqual(t *testing.T, got, want []models.Task) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Title != w.Title || g.Description != w.Description ||
			g.Status != w.Status || g.Priority != w.Priority || g.Assignee != w.Assignee ||
			!g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("Task %d mismatch:\n got  %+v\n want %+v", i, g, w)
		}
		if len(g.Tags) != len(w.Tags) {
			t.Errorf("Task %d tags mismatch: %q vs %q", i, g.Tags, w.Tags)
			continue
		}
		for j := range w.Tags {
			if g.Tags[j] != w.Tags[j] {
				t.Errorf("Task %d tag %d: got %q want %q", i, j, g.Tags[j], w.Tags[j])
			}
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	for name, tasks := range map[string][]models.Task{
		"sample": sampleTasks(),
		"empty":  {},
	} {
		t.Run(name, func(t *testing.T) {
			snap := NewSnapshot(newMapKV(), "")
			ctx := context.Background()

			if err := snap.Save(ctx, tasks); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, ok := snap.Load(ctx)
			if !ok {
				t.Fatal("Expected snapshot to load")
			}
			assertTasksEqual(t, got, tasks)
		})
	}
}

func TestSnapshotEncodesNilAsEmptyArray(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	snap := NewSnapshot(kv, "k")
	if err := snap.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if kv.values["k"] != "[]" {
		t.Errorf("Expected '[]', got %q", kv.values["k"])
	}
}

func TestSnapshotWireFormat(t *testing.T) {
	t.Parallel()

	data, err := Encode([]models.Task{{
		ID: "1", Title: "t", Status: "todo", Priority: "low", Assignee: "a",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := `[{"id":"1","title":"t","description":"","status":"todo","priority":"low","assignee":"a","tags":[],"createdAt":"2024-01-02T03:04:05Z"}]`
	if string(data) != want {
		t.Errorf("Unexpected encoding:\n got  %s\n want %s", data, want)
	}
}

func TestSnapshotLoadAbsent(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"garbage":         "not json",
		"object":          `{"id":"1"}`,
		"null":            "null",
		"truncated":       `[{"id":"1","title":"x"`,
		"null element":    `[null]`,
		"missing id":      `[{"title":"x","status":"todo","createdAt":"2024-01-01T00:00:00Z"}]`,
		"empty id":        `[{"id":"","title":"x","status":"todo","createdAt":"2024-01-01T00:00:00Z"}]`,
		"missing title":   `[{"id":"1","status":"todo","createdAt":"2024-01-01T00:00:00Z"}]`,
		"missing status":  `[{"id":"1","title":"x","createdAt":"2024-01-01T00:00:00Z"}]`,
		"missing created": `[{"id":"1","title":"x","status":"todo"}]`,
		"bad created":     `[{"id":"1","title":"x","status":"todo","createdAt":"yesterday"}]`,
		"wrong type":      `[{"id":1,"title":"x","status":"todo","createdAt":"2024-01-01T00:00:00Z"}]`,
		"bad priority":    `[{"id":"1","title":"x","status":"todo","priority":"urgent","createdAt":"2024-01-01T00:00:00Z"}]`,
		"duplicate ids": `[{"id":"1","title":"x","status":"todo","createdAt":"2024-01-01T00:00:00Z"},
			{"id":"1","title":"y","status":"done","createdAt":"2024-01-01T00:00:00Z"}]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := newMapKV()
			kv.values[DefaultKey] = raw
			if tasks, ok := NewSnapshot(kv, DefaultKey).Load(context.Background()); ok {
				t.Errorf("Expected absent, got %+v", tasks)
			}
		})
	}
}

func TestSnapshotLoadMissingKeyAndBackendError(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	if _, ok := NewSnapshot(kv, "").Load(context.Background()); ok {
		t.Error("Expected absent for missing key")
	}

	kv.getErr = errors.New("storage unavailable")
	kv.values[DefaultKey] = "[]"
	if _, ok := NewSnapshot(kv, "").Load(context.Background()); ok {
		t.Error("Expected absent on backend error")
	}
}

func TestSnapshotLoadDefaultsOptionalFields(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	kv.values[DefaultKey] = `[{"id":"1","title":"x","status":"todo","createdAt":"2024-01-01T00:00:00.000Z","extra":true}]`
	tasks, ok := NewSnapshot(kv, "").Load(context.Background())
	if !ok {
		t.Fatal("Expected snapshot to load")
	}
	got := tasks[0]
	if got.Priority != models.PriorityMedium || got.Tags == nil || got.Description != "" {
		t.Errorf("Unexpected defaults: %+v", got)
	}
}

func TestSnapshotSaveError(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	kv.setErr = errors.New("quota exceeded")
	if err := NewSnapshot(kv, "").Save(context.Background(), sampleTasks()); err == nil {
		t.Error("Expected save error")
	}
}
