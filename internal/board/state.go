package board

import (
	"time"

	"github.com/google/uuid"

	"github.com/tgienger/kanban/internal/models"
)

// FallbackAssignee is used when neither the task nor the configuration names one
const FallbackAssignee = "John Doe"

// State is the whole board: the task collection plus transient UI state.
// Tasks keep creation order; column membership is derived from Status.
type State struct {
	Tasks         []models.Task
	EditingTaskID string
	ShowModal     bool
	DraggedTaskID string

	// Revision increments on every change to Tasks and never on UI state.
	Revision uint64
}

// EditingTask resolves the editing reference against the current tasks
func (s State) EditingTask() (models.Task, bool) {
	return s.lookup(s.EditingTaskID)
}

// DraggedTask resolves the dragged reference against the current tasks
func (s State) DraggedTask() (models.Task, bool) {
	return s.lookup(s.DraggedTaskID)
}

// Task returns the task with the given id
func (s State) Task(id string) (models.Task, bool) {
	return s.lookup(id)
}

func (s State) lookup(id string) (models.Task, bool) {
	if i := models.FindTask(s.Tasks, id); i >= 0 {
		return s.Tasks[i], true
	}
	return models.Task{}, false
}

// Column returns the tasks of column key in collection order
func (s State) Column(key models.Status) []models.Task {
	return models.ByStatus(s.Tasks, key)
}

// Env holds what the reducer needs from outside: the column set, an id
// source and a clock. Injecting them keeps Apply deterministic in tests.
type Env struct {
	Columns         models.Columns
	DefaultAssignee string
	NewID           func() string
	Now             func() time.Time
}

// NewEnv returns an Env backed by random UUIDs and the wall clock
func NewEnv(columns models.Columns, defaultAssignee string) Env {
	if len(columns) == 0 {
		columns = models.DefaultColumns()
	}
	if defaultAssignee == "" {
		defaultAssignee = FallbackAssignee
	}
	return Env{
		Columns:         columns,
		DefaultAssignee: defaultAssignee,
		NewID:           uuid.NewString,
		Now:             time.Now,
	}
}

// SeedTasks returns the sample tasks a fresh board starts with
func SeedTasks(now time.Time) []models.Task {
	return []models.Task{
		{
			ID:          "1",
			Title:       "Design new landing page",
			Description: "Create wireframes and mockups for the new product landing page",
			Status:      models.StatusTodo,
			Priority:    models.PriorityLow,
			Assignee:    "John Doe",
			Tags:        []string{"Design", "UI/UX"},
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Title:       "API integration",
			Description: "Integrate third-party payment API",
			Status:      models.StatusInProgress,
			Priority:    models.PriorityMedium,
			Assignee:    "Sarah Wilson",
			Tags:        []string{"Backend", "API"},
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Title:       "Security audit",
			Description: "Review code for security vulnerabilities",
			Status:      models.StatusDone,
			Priority:    models.PriorityHigh,
			Assignee:    "Jane Smith",
			Tags:        []string{"Security", "Review"},
			CreatedAt:   now,
		},
	}
}

// InitialState is the seeded board used when nothing has been persisted
func InitialState(now time.Time) State {
	return State{Tasks: SeedTasks(now)}
}
