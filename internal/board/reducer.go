package board

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tgienger/kanban/internal/models"
)

// maxIDAttempts bounds retries when the id source hands out a taken id
const maxIDAttempts = 16

// Apply returns the state that results from applying a to s. It never
// mutates s and never panics; actions it does not recognise return s as is.
func Apply(env Env, s State, a Action) State {
	switch a := deref(a).(type) {
	case LoadTasks:
		s.Tasks = cloneTasks(a.Tasks)
		s.Revision++

	case AddTask:
		s.Tasks = append(cloneTasks(s.Tasks), newTask(env, s.Tasks, a.Fields))
		s.Revision++

	case EditTask:
		i := models.FindTask(s.Tasks, a.ID)
		if i < 0 {
			return s
		}
		tasks := cloneTasks(s.Tasks)
		tasks[i] = a.Updates.Apply(tasks[i])
		s.Tasks = tasks
		s.Revision++

	case DeleteTask:
		i := models.FindTask(s.Tasks, a.ID)
		if i < 0 {
			return s
		}
		tasks := make([]models.Task, 0, len(s.Tasks)-1)
		tasks = append(tasks, cloneTasks(s.Tasks[:i])...)
		tasks = append(tasks, cloneTasks(s.Tasks[i+1:])...)
		s.Tasks = tasks
		s.Revision++

	case MoveTask:
		i := models.FindTask(s.Tasks, a.TaskID)
		if i < 0 || !env.Columns.Has(a.NewStatus) || s.Tasks[i].Status == a.NewStatus {
			return s
		}
		tasks := cloneTasks(s.Tasks)
		tasks[i].Status = a.NewStatus
		s.Tasks = tasks
		s.Revision++

	case SetEditingTask:
		s.EditingTaskID = a.ID

	case ToggleModal:
		s.ShowModal = a.Show

	case SetDraggedTask:
		s.DraggedTaskID = a.ID
	}
	return s
}

// deref lets callers dispatch pointers to actions as well as values
func deref(a Action) Action {
	switch p := a.(type) {
	case *LoadTasks:
		if p != nil {
			return *p
		}
	case *AddTask:
		if p != nil {
			return *p
		}
	case *EditTask:
		if p != nil {
			return *p
		}
	case *DeleteTask:
		if p != nil {
			return *p
		}
	case *MoveTask:
		if p != nil {
			return *p
		}
	case *SetEditingTask:
		if p != nil {
			return *p
		}
	case *ToggleModal:
		if p != nil {
			return *p
		}
	case *SetDraggedTask:
		if p != nil {
			return *p
		}
	default:
		return a
	}
	return nil
}

func newTask(env Env, existing []models.Task, f models.TaskFields) models.Task {
	t := models.Task{
		ID:          uniqueID(env, existing),
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
		Priority:    f.Priority,
		Assignee:    f.Assignee,
		Tags:        append([]string{}, f.Tags...),
		CreatedAt:   clock(env),
	}
	if t.Status == "" {
		t.Status = env.Columns.First()
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if strings.TrimSpace(t.Assignee) == "" {
		t.Assignee = env.DefaultAssignee
		if t.Assignee == "" {
			t.Assignee = FallbackAssignee
		}
	}
	return t
}

func uniqueID(env Env, existing []models.Task) string {
	gen := env.NewID
	if gen == nil {
		gen = uuid.NewString
	}
	for i := 0; i < maxIDAttempts; i++ {
		if id := gen(); id != "" && models.FindTask(existing, id) < 0 {
			return id
		}
	}
	return uuid.NewString()
}

func clock(env Env) time.Time {
	if env.Now == nil {
		return time.Now()
	}
	return env.Now()
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}
