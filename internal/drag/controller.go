// Package drag turns pointer and keyboard drag gestures into column moves.
//
// A session is a small state machine: Idle -> Dragging(source, candidate) ->
// Idle. Nothing is written while dragging; Drop yields at most one
// board.MoveTask, and Cancel yields none.
package drag

import (
	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/models"
)

// Phase is the state of the drag session
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// Board is the store the controller resolves targets against and reports to.
// *board.Store satisfies it.
type Board interface {
	Columns() models.Columns
	State() board.State
	Dispatch(board.Action) board.State
}

// Target is the droppable currently under the pointer or keyboard focus
type Target struct {
	ID   string
	Kind RegionKind
}

// Controller tracks one drag session at a time
type Controller struct {
	board     Board
	phase     Phase
	source    string
	candidate *Target
	regions   []Region
}

// NewController creates an idle controller
func NewController(b Board) *Controller {
	return &Controller{board: b}
}

// Phase returns the session state
func (c *Controller) Phase() Phase { return c.phase }

// Active reports whether a session is in progress
func (c *Controller) Active() bool { return c.phase == Dragging }

// Source returns the id of the task being dragged
func (c *Controller) Source() string { return c.source }

// Candidate returns the current drop target, if any
func (c *Controller) Candidate() (Target, bool) {
	if c.candidate == nil {
		return Target{}, false
	}
	return *c.candidate, true
}

// SetRegions replaces the droppable regions. The view calls it after every
// layout change.
func (c *Controller) SetRegions(regions []Region) {
	c.regions = append(c.regions[:0], regions...)
}

// Begin picks up a task. It fails if a session is already active or the
// task is not on the board. The candidate starts as the task's own column.
func (c *Controller) Begin(taskID string) bool {
	if c.phase == Dragging {
		return false
	}
	task, ok := c.board.State().Task(taskID)
	if !ok {
		return false
	}
	c.phase = Dragging
	c.source = taskID
	c.candidate = &Target{ID: string(task.Status), Kind: RegionColumn}
	c.board.Dispatch(board.SetDraggedTask{ID: taskID})
	return true
}

// Hover sets the candidate to a column or task directly
func (c *Controller) Hover(t Target) {
	if c.phase != Dragging {
		return
	}
	c.candidate = &t
}

// Leave clears the candidate, as when the pointer exits every droppable
func (c *Controller) Leave() {
	c.candidate = nil
}

// PointerMove re-evaluates the candidate for a pointer at p. Among the
// regions containing p the one with the nearest center wins; if none
// contains p there is no candidate.
func (c *Controller) PointerMove(p Point) {
	if c.phase != Dragging {
		return
	}
	r, ok := closest(c.regions, p)
	if !ok {
		c.candidate = nil
		return
	}
	c.candidate = &Target{ID: r.ID, Kind: r.Kind}
}

// Step moves the candidate delta columns left (negative) or right,
// clamped to the column set. It is the keyboard equivalent of PointerMove.
func (c *Controller) Step(delta int) {
	if c.phase != Dragging {
		return
	}
	cols := c.board.Columns()
	if len(cols) == 0 {
		return
	}
	current, ok := c.candidateColumn()
	if !ok {
		if task, found := c.board.State().Task(c.source); found {
			current = task.Status
		}
	}
	i := cols.Index(current)
	if i < 0 {
		i = 0
	} else {
		i += delta
	}
	i = min(max(i, 0), len(cols)-1)
	c.candidate = &Target{ID: string(cols[i].Key), Kind: RegionColumn}
}

// CandidateColumn returns the column the current candidate resolves to
func (c *Controller) CandidateColumn() (models.Status, bool) {
	if c.phase != Dragging {
		return "", false
	}
	return c.candidateColumn()
}

func (c *Controller) candidateColumn() (models.Status, bool) {
	if c.candidate == nil {
		return "", false
	}
	switch c.candidate.Kind {
	case RegionTask:
		task, ok := c.board.State().Task(c.candidate.ID)
		if !ok || !c.board.Columns().Has(task.Status) {
			return "", false
		}
		return task.Status, true
	default:
		key := models.Status(c.candidate.ID)
		if !c.board.Columns().Has(key) {
			return "", false
		}
		return key, true
	}
}

// Drop ends the session and dispatches the resulting move, if any. A move
// happens only when there is a candidate, the candidate is not the dragged
// task itself, and it resolves to a configured column.
func (c *Controller) Drop() (board.MoveTask, bool) {
	if c.phase != Dragging {
		return board.MoveTask{}, false
	}
	move, ok := c.resolve()
	c.reset()
	if ok {
		c.board.Dispatch(move)
	}
	return move, ok
}

func (c *Controller) resolve() (board.MoveTask, bool) {
	if c.candidate == nil {
		return board.MoveTask{}, false
	}
	if c.candidate.ID == c.source {
		return board.MoveTask{}, false
	}
	if _, ok := c.board.State().Task(c.source); !ok {
		return board.MoveTask{}, false
	}
	status, ok := c.candidateColumn()
	if !ok {
		return board.MoveTask{}, false
	}
	return board.MoveTask{TaskID: c.source, NewStatus: status}, true
}

// Cancel ends the session without a move. It is safe to call when idle,
// so the view can call it on any interruption such as focus loss.
func (c *Controller) Cancel() {
	c.reset()
}

// reset returns to Idle and clears the store's drag reference
func (c *Controller) reset() {
	wasDragging := c.phase == Dragging
	c.phase = Idle
	c.source = ""
	c.candidate = nil
	if wasDragging || c.board.State().DraggedTaskID != "" {
		c.board.Dispatch(board.SetDraggedTask{})
	}
}
