package board

import "github.com/tgienger/kanban/internal/models"

// Action is one of the board transitions. The set is closed: only the types
// in this file implement it.
type Action interface {
	action()
}

// LoadTasks replaces the task collection wholesale. It is used on hydrate
// and does not validate.
type LoadTasks struct {
	Tasks []models.Task
}

// AddTask appends a new task built from Fields
type AddTask struct {
	Fields models.TaskFields
}

// EditTask merges Updates into the task with the given ID
type EditTask struct {
	ID      string
	Updates models.TaskUpdates
}

// DeleteTask removes the task with the given ID
type DeleteTask struct {
	ID string
}

// MoveTask changes the column of a task. It is the only path drag uses.
type MoveTask struct {
	TaskID    string
	NewStatus models.Status
}

// SetEditingTask points the editing reference at a task id ("" clears it)
type SetEditingTask struct {
	ID string
}

// ToggleModal sets the modal flag
type ToggleModal struct {
	Show bool
}

// SetDraggedTask points the drag reference at a task id ("" clears it)
type SetDraggedTask struct {
	ID string
}

func (LoadTasks) action()      {}
func (AddTask) action()        {}
func (EditTask) action()       {}
func (DeleteTask) action()     {}
func (MoveTask) action()       {}
func (SetEditingTask) action() {}
func (ToggleModal) action()    {}
func (SetDraggedTask) action() {}
