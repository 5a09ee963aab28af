package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/tgienger/kanban/internal/models"
)

// Snapshot loads and saves the task collection under a single key
type Snapshot struct {
	kv  KV
	key string
}

// NewSnapshot creates a snapshot adapter over kv
func NewSnapshot(kv KV, key string) *Snapshot {
	if key == "" {
		key = DefaultKey
	}
	return &Snapshot{kv: kv, key: key}
}

// Key returns the storage key in use
func (s *Snapshot) Key() string { return s.key }

// Load reads the stored tasks. Anything other than a well-formed array of
// tasks, including backend errors, is reported as absent and logged.
func (s *Snapshot) Load(ctx context.Context) ([]models.Task, bool) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		log.WithError(err).WithField("key", s.key).Warn("failed to read stored tasks")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	tasks, err := Decode([]byte(raw))
	if err != nil {
		log.WithError(err).WithField("key", s.key).Warn("ignoring malformed stored tasks")
		return nil, false
	}
	return tasks, true
}

// Save writes the full collection in one Set
func (s *Snapshot) Save(ctx context.Context, tasks []models.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// record mirrors models.Task with pointers so missing fields can be told
// apart from empty ones
type record struct {
	ID          *string          `json:"id"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *models.Status   `json:"status"`
	Priority    *models.Priority `json:"priority"`
	Assignee    *string          `json:"assignee"`
	Tags        []string         `json:"tags"`
	CreatedAt   *time.Time       `json:"createdAt"`
}

var errNotArray = errors.New("stored value is not a JSON array")

// Encode serializes tasks as a JSON array. A nil collection encodes as [].
func Encode(tasks []models.Task) ([]byte, error) {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t
		if out[i].Tags == nil {
			out[i].Tags = []string{}
		}
	}
	data, err := sonic.ConfigStd.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a stored snapshot. It rejects values that are not arrays,
// records missing id, title, status or createdAt, unknown priorities and
// duplicate ids. Optional fields get their defaults.
func Decode(data []byte) ([]models.Task, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, errNotArray
	}
	var records []*record
	if err := sonic.ConfigStd.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		t, err := r.task()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("task %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *record) task() (models.Task, error) {
	switch {
	case r == nil:
		return models.Task{}, errors.New("null record")
	case r.ID == nil || *r.ID == "":
		return models.Task{}, errors.New("missing id")
	case r.Title == nil:
		return models.Task{}, errors.New("missing title")
	case r.Status == nil || *r.Status == "":
		return models.Task{}, errors.New("missing status")
	case r.CreatedAt == nil:
		return models.Task{}, errors.New("missing createdAt")
	}

	t := models.Task{
		ID:        *r.ID,
		Title:     *r.Title,
		Status:    *r.Status,
		Priority:  models.PriorityMedium,
		Tags:      r.Tags,
		CreatedAt: *r.CreatedAt,
	}
	if r.Priority != nil {
		if !r.Priority.Valid() {
			return models.Task{}, fmt.Errorf("unknown priority %q", *r.Priority)
		}
		t.Priority = *r.Priority
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Assignee != nil {
		t.Assignee = *r.Assignee
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t, nil
}
