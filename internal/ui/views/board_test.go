package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/drag"
	"github.com/tgienger/kanban/internal/models"
)

var testUsers = []string{"John Doe", "Jane Smith", "Sarah Wilson", "Mike Johnson"}

// newTestBoard returns a 120x40 board over the seeded tasks:
// "1" in todo, "2" in inprogress and "3" in done.
func newTestBoard(t *testing.T) (*BoardView, *board.Store) {
	t.Helper()
	store := board.NewStore(board.NewEnv(nil, ""), nil)
	v := NewBoardView(store, testUsers)
	v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return v, store
}

func press(v *BoardView, keys ...string) {
	for _, k := range keys {
		v.Update(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func cardCenter(v *BoardView, col, slot int) (int, int) {
	r := v.layout().cardRect(col, slot)
	return r.X + r.W/2, r.Y
}

func statusOf(t *testing.T, store *board.Store, id string) models.Status {
	t.Helper()
	task, ok := store.State().Task(id)
	if !ok {
		t.Fatalf("Expected task %s on the board", id)
	}
	return task.Status
}

func TestKeyboardDragMovesTask(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "space")
	if got := store.State().DraggedTaskID; got != "1" {
		t.Fatalf("Expected dragged task 1, got %q", got)
	}
	press(v, "right", "right", "right")
	press(v, "space")

	if got := statusOf(t, store, "1"); got != models.StatusDone {
		t.Errorf("Expected done, got %s", got)
	}
	if store.State().DraggedTaskID != "" {
		t.Error("Expected dragged reference cleared after drop")
	}
	if v.col != 2 {
		t.Errorf("Expected focus to follow the task to column 2, got %d", v.col)
	}
}

func TestKeyboardDragCancel(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)
	before := store.State().Revision

	press(v, "space", "right", "esc")

	if got := statusOf(t, store, "1"); got != models.StatusTodo {
		t.Errorf("Expected todo, got %s", got)
	}
	if store.State().DraggedTaskID != "" {
		t.Error("Expected dragged reference cleared after cancel")
	}
	if store.State().Revision != before {
		t.Error("Expected no task change after cancel")
	}
	if v.drag.Active() {
		t.Error("Expected drag session to end")
	}
}

func TestBlurCancelsDrag(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "space", "right")
	v.Update(tea.BlurMsg{})

	if store.State().DraggedTaskID != "" || v.drag.Active() {
		t.Error("Expected blur to cancel the drag")
	}
	if got := statusOf(t, store, "1"); got != models.StatusTodo {
		t.Errorf("Expected todo, got %s", got)
	}
}

func TestMouseDragToColumn(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	x, y := cardCenter(v, 0, 0)
	v.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	if store.State().DraggedTaskID != "1" {
		t.Fatalf("Expected press to pick up task 1, got %q", store.State().DraggedTaskID)
	}

	// Empty space low in the second column.
	col := v.layout().columnRect(1)
	v.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, col.X+col.W/2, col.Y+col.H-3))
	if key, ok := v.drag.CandidateColumn(); !ok || key != models.StatusInProgress {
		t.Errorf("Expected candidate inprogress, got %q ok=%v", key, ok)
	}
	v.Update(mouse(tea.MouseActionRelease, tea.MouseButtonNone, col.X+col.W/2, col.Y+col.H-3))

	if got := statusOf(t, store, "1"); got != models.StatusInProgress {
		t.Errorf("Expected inprogress, got %s", got)
	}
	if store.State().DraggedTaskID != "" {
		t.Error("Expected dragged reference cleared after drop")
	}
}

func TestMouseDropOnCardUsesItsColumn(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	x, y := cardCenter(v, 0, 0)
	v.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	tx, ty := cardCenter(v, 2, 0)
	v.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, tx, ty))
	v.Update(mouse(tea.MouseActionRelease, tea.MouseButtonNone, tx, ty))

	if got := statusOf(t, store, "1"); got != models.StatusDone {
		t.Errorf("Expected done, got %s", got)
	}
}

func TestMouseReleaseOutsideBoard(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)
	before := store.State().Revision

	x, y := cardCenter(v, 0, 0)
	v.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	v.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, 0))
	v.Update(mouse(tea.MouseActionRelease, tea.MouseButtonNone, x, 0))

	if store.State().Revision != before {
		t.Error("Expected no move for a drop outside every column")
	}
	if store.State().DraggedTaskID != "" {
		t.Error("Expected dragged reference cleared")
	}
}

func TestMouseClickSelectsWithoutMoving(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)
	before := store.State().Revision

	x, y := cardCenter(v, 1, 0)
	v.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	v.Update(mouse(tea.MouseActionRelease, tea.MouseButtonNone, x, y))

	if store.State().Revision != before {
		t.Error("Expected a click to leave tasks unchanged")
	}
	if v.col != 1 {
		t.Errorf("Expected click to focus column 1, got %d", v.col)
	}
	if task, ok := v.selectedTask(); !ok || task.ID != "2" {
		t.Errorf("Expected task 2 selected, got %+v", task)
	}
}

func TestRegionsMatchLayout(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	l := v.layout()
	regions := l.regions(store.Columns(), v.visibleSlice)
	if len(regions) != 6 {
		t.Fatalf("Expected 3 columns and 3 cards, got %d regions", len(regions))
	}
	for i, r := range regions[:3] {
		if r.Kind != drag.RegionColumn || r.ID != string(store.Columns()[i].Key) {
			t.Errorf("Region %d: expected column %s, got %+v", i, store.Columns()[i].Key, r)
		}
	}
	if r := regions[3]; r.ID != "1" || r.Rect != l.cardRect(0, 0) {
		t.Errorf("Expected card 1 at %+v, got %+v", l.cardRect(0, 0), r)
	}

	// Columns sit side by side without overlap.
	a, b := l.columnRect(0), l.columnRect(1)
	if a.X+a.W > b.X {
		t.Errorf("Columns overlap: %+v %+v", a, b)
	}
}

func TestNewTaskFormValidation(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "n")
	st := store.State()
	if !st.ShowModal || st.EditingTaskID != "" {
		t.Fatalf("Expected modal open for a new task, got %+v", st)
	}

	press(v, "ctrl+s")
	if !store.State().ShowModal {
		t.Fatal("Expected form to stay open on invalid input")
	}
	if v.form.errors["title"] != "Title is required" || v.form.errors["assignee"] != "Assignee is required" {
		t.Errorf("Unexpected errors %v", v.form.errors)
	}
	if n := len(store.State().Tasks); n != 3 {
		t.Errorf("Expected no task added, got %d", n)
	}

	press(v, "Ship it")
	press(v, "tab", "tab", "tab", "tab") // description, status, priority, assignee
	press(v, "right")
	press(v, "ctrl+s")

	st = store.State()
	if st.ShowModal || st.EditingTaskID != "" {
		t.Error("Expected modal closed after save")
	}
	if len(st.Tasks) != 4 {
		t.Fatalf("Expected 4 tasks, got %d", len(st.Tasks))
	}
	added := st.Tasks[3]
	if added.Title != "Ship it" || added.Assignee != "John Doe" || added.Status != models.StatusTodo {
		t.Errorf("Unexpected task %+v", added)
	}
}

func TestNewTaskStartsInFocusedColumn(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "right", "n", "Review PR", "tab", "tab", "tab", "tab", "right", "ctrl+s")

	st := store.State()
	if len(st.Tasks) != 4 || st.Tasks[3].Status != models.StatusInProgress {
		t.Errorf("Expected new task in inprogress, got %+v", st.Tasks[len(st.Tasks)-1])
	}
}

func TestEditTaskForm(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "e")
	st := store.State()
	if !st.ShowModal || st.EditingTaskID != "1" {
		t.Fatalf("Expected editing task 1, got %+v", st)
	}

	press(v, " v2")
	press(v, "tab", "tab", "right") // status -> inprogress
	press(v, "ctrl+s")

	task, _ := store.State().Task("1")
	if task.Title != "Design new landing page v2" || task.Status != models.StatusInProgress {
		t.Errorf("Unexpected task after edit %+v", task)
	}
	if store.State().ShowModal {
		t.Error("Expected modal closed")
	}
}

func TestEditFormCancel(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)
	before := store.State().Revision

	press(v, "e", "changed", "esc")

	if store.State().Revision != before {
		t.Error("Expected cancel to leave tasks unchanged")
	}
	st := store.State()
	if st.ShowModal || st.EditingTaskID != "" {
		t.Errorf("Expected modal closed, got %+v", st)
	}
}

func TestDetailModal(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "enter")
	if st := store.State(); !st.ShowModal || st.EditingTaskID != "1" {
		t.Fatalf("Expected detail modal for task 1, got %+v", st)
	}
	if out := v.View(); !strings.Contains(out, "Create wireframes") {
		t.Errorf("Expected description in detail view:\n%s", out)
	}

	press(v, "p")
	if task, _ := store.State().Task("1"); task.Priority != models.PriorityMedium {
		t.Errorf("Expected priority cycled to medium, got %s", task.Priority)
	}

	press(v, "esc")
	if store.State().ShowModal {
		t.Error("Expected modal closed")
	}
}

func TestDeleteConfirm(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "d", "n")
	if n := len(store.State().Tasks); n != 3 {
		t.Fatalf("Expected declined delete to keep 3 tasks, got %d", n)
	}

	press(v, "d", "y")
	if _, ok := store.State().Task("1"); ok {
		t.Error("Expected task 1 deleted")
	}
	if _, ok := v.selectedTask(); ok {
		t.Error("Expected empty column to have no selection")
	}
}

func TestDeleteFromDetailClosesModal(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "right", "enter", "d", "y")

	st := store.State()
	if _, ok := st.Task("2"); ok {
		t.Error("Expected task 2 deleted")
	}
	if st.ShowModal || st.EditingTaskID != "" {
		t.Errorf("Expected modal closed, got %+v", st)
	}
}

func TestSearchFiltersDisplayOnly(t *testing.T) {
	t.Parallel()
	v, store := newTestBoard(t)

	press(v, "/", "security", "enter")

	if n := len(v.visibleTasks(0)); n != 0 {
		t.Errorf("Expected no matches in To Do, got %d", n)
	}
	if n := len(v.visibleTasks(2)); n != 1 {
		t.Errorf("Expected 1 match in Completed, got %d", n)
	}
	if n := len(store.State().Tasks); n != 3 {
		t.Errorf("Expected the filter to leave tasks alone, got %d", n)
	}

	press(v, "esc")
	if n := len(v.visibleTasks(0)); n != 1 {
		t.Errorf("Expected esc to clear the filter, got %d", n)
	}
}

func TestHelpPopup(t *testing.T) {
	t.Parallel()
	v, _ := newTestBoard(t)

	press(v, "?")
	if !strings.Contains(v.View(), "Keyboard Shortcuts") {
		t.Error("Expected help popup")
	}
	press(v, "x")
	if v.showHelpPopup {
		t.Error("Expected any key to close the popup")
	}
}

func TestViewRendersColumns(t *testing.T) {
	t.Parallel()
	v, _ := newTestBoard(t)

	out := v.View()
	for _, want := range []string{"Kanban Board", "To Do", "In Progress", "Completed", "Design new landing page", "API integration"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}
