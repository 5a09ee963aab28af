package models

import (
	"strings"
	"time"
)

// Status is the key of the column a task belongs to
type Status string

// Reference column keys
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

// Priority drives visual emphasis only
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorityOrder = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Priorities returns the priorities in ascending order
func Priorities() []Priority {
	return append([]Priority(nil), priorityOrder...)
}

// ParsePriority maps a string onto a priority, case-insensitively
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// Valid reports whether p is one of low, medium or high
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the display label
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	}
	return "Medium"
}

// Next cycles low -> medium -> high -> low
func (p Priority) Next() Priority {
	for i, q := range priorityOrder {
		if q == p {
			return priorityOrder[(i+1)%len(priorityOrder)]
		}
	}
	return PriorityMedium
}

// Task represents one unit of work on the board
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no slices with t
func (t Task) Clone() Task {
	c := t
	c.Tags = append([]string{}, t.Tags...)
	return c
}

// TaskFields holds the user-supplied fields of a new task. Zero values are
// replaced with defaults when the task is created.
type TaskFields struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Assignee    string
	Tags        []string
}

// TaskUpdates is a partial set of fields merged into an existing task.
// Identity and creation time have no field here and can never be updated.
type TaskUpdates struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	Assignee    *string
	Tags        *[]string
}

// Apply merges u into t and returns the result
func (u TaskUpdates) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Assignee != nil {
		t.Assignee = *u.Assignee
	}
	if u.Tags != nil {
		t.Tags = append([]string{}, (*u.Tags)...)
	}
	return t
}

// ByStatus returns the tasks in column s, in collection order
func ByStatus(tasks []Task, s Status) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Status == s {
			out = append(out, t)
		}
	}
	return out
}

// FindTask returns the index of the task with the given id, or -1
func FindTask(tasks []Task, id string) int {
	if id == "" {
		return -1
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
