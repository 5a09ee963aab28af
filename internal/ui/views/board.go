package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/drag"
	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/ui/keys"
	"github.com/tgienger/kanban/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// modalMode says what the open modal shows. Whether a modal is open at all
// is the store's ShowModal flag.
type modalMode int

const (
	modalDetail modalMode = iota
	modalForm
)

// BoardView shows the columns and their cards
type BoardView struct {
	store  *board.Store
	drag   *drag.Controller
	users  []string
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// Focus: column and, per column, the card cursor and first visible card
	col    int
	rows   []int
	scroll []int

	// Search filter, display only
	searching   bool
	searchInput textinput.Model

	// Modal
	mode modalMode
	form *taskForm

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// True while the left button is held on a picked-up card
	mouseDrag bool

	showHelpPopup bool
	notice        string
}

// NewBoardView creates the board view. users is the closed set of
// assignees offered by the task form.
func NewBoardView(store *board.Store, users []string) *BoardView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = "/ "
	search.CharLimit = 100

	n := len(store.Columns())
	return &BoardView{
		store:       store,
		drag:        drag.NewController(store),
		users:       users,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		rows:        make([]int, n),
		scroll:      make([]int, n),
		searchInput: search,
	}
}

// Init initializes the view
func (v *BoardView) Init() tea.Cmd {
	return nil
}

// Drag exposes the drag controller
func (v *BoardView) Drag() *drag.Controller {
	return v.drag
}

// Update handles messages
func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.clampCursors()
		return v, nil

	case tea.BlurMsg:
		// Losing focus mid-drag would strand the session.
		v.cancelDrag()
		return v, nil

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.store.State().ShowModal {
			if v.mode == modalForm {
				return v.updateForm(msg)
			}
			return v.updateDetail(msg)
		}

		if v.drag.Active() {
			return v.updateDragging(msg)
		}

		if v.searching {
			return v.updateSearch(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.notice = ""

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		if v.searchInput.Value() != "" {
			v.searchInput.Reset()
			v.clampCursors()
		}
		return v, nil

	case key.Matches(msg, v.keys.Left):
		if v.col > 0 {
			v.col--
		}
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if v.col < len(v.store.Columns())-1 {
			v.col++
		}
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.rows[v.col] > 0 {
			v.rows[v.col]--
			v.ensureVisible(v.col)
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.rows[v.col] < len(v.visibleTasks(v.col))-1 {
			v.rows[v.col]++
			v.ensureVisible(v.col)
		}
		return v, nil

	case key.Matches(msg, v.keys.Grab):
		if t, ok := v.selectedTask(); ok && v.drag.Begin(t.ID) {
			v.notice = fmt.Sprintf("Moving %q: ←/→ choose a column, space to drop, esc to cancel", t.Title)
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if t, ok := v.selectedTask(); ok {
			v.openModal(t.ID, modalDetail)
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if t, ok := v.selectedTask(); ok {
			v.openForm(t)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.openNewForm()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selectedTask(); ok {
			v.confirmDelete(t)
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *BoardView) updateDragging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Left):
		v.drag.Step(-1)
	case key.Matches(msg, v.keys.Right):
		v.drag.Step(1)
	case key.Matches(msg, v.keys.Grab), key.Matches(msg, v.keys.Enter):
		v.drop()
	case key.Matches(msg, v.keys.Back):
		v.cancelDrag()
	case key.Matches(msg, v.keys.Quit):
		v.cancelDrag()
		return v, tea.Quit
	}
	return v, nil
}

func (v *BoardView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.searchInput.Reset()
		v.searchInput.Blur()
		v.searching = false
		v.clampCursors()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		v.searchInput.Blur()
		v.searching = false
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.clampCursors()
	return v, cmd
}

func (v *BoardView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		st := v.store.State()
		if st.ShowModal && st.EditingTaskID == v.deleteTargetID {
			v.closeModal()
		}
		v.store.Dispatch(board.DeleteTask{ID: v.deleteTargetID})
		v.notice = fmt.Sprintf("Deleted %q", v.deleteTargetName)
		v.clampCursors()
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *BoardView) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, ok := v.store.State().EditingTask()
	if !ok {
		v.closeModal()
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.closeModal()
	case key.Matches(msg, v.keys.Edit):
		v.openForm(t)
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Delete):
		v.confirmDelete(t)
	case msg.String() == "p":
		next := t.Priority.Next()
		v.store.Dispatch(board.EditTask{ID: t.ID, Updates: models.TaskUpdates{Priority: &next}})
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}
	return v, nil
}

func (v *BoardView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.form.update(msg)
	switch result {
	case formCancel:
		v.closeModal()
	case formSubmit:
		v.saveForm()
	}
	return v, cmd
}

// openModal points the store's editing reference at id and shows the modal
func (v *BoardView) openModal(id string, mode modalMode) {
	v.mode = mode
	v.store.Dispatch(board.SetEditingTask{ID: id})
	v.store.Dispatch(board.ToggleModal{Show: true})
}

func (v *BoardView) closeModal() {
	v.form = nil
	v.store.Dispatch(board.ToggleModal{Show: false})
	v.store.Dispatch(board.SetEditingTask{})
}

func (v *BoardView) openForm(t models.Task) {
	v.form = v.newForm()
	v.form.load(t)
	v.openModal(t.ID, modalForm)
}

// openNewForm starts a task in the focused column
func (v *BoardView) openNewForm() {
	v.form = v.newForm()
	if cols := v.store.Columns(); v.col < len(cols) {
		v.form.status = cols[v.col].Key
	}
	v.form.setFocus(fieldTitle)
	v.openModal("", modalForm)
}

func (v *BoardView) newForm() *taskForm {
	f := newTaskForm(v.store.Columns(), v.users, v.keys)
	f.setWidth(clamp(styles.ContentWidth(v.width)-10, 20, 50))
	return f
}

// saveForm validates and dispatches the add or edit. Invalid input keeps
// the form open with its errors shown.
func (v *BoardView) saveForm() {
	if !v.form.validate() {
		return
	}

	var id string
	if v.form.taskID == "" {
		st := v.store.Dispatch(board.AddTask{Fields: v.form.fields()})
		id = st.Tasks[len(st.Tasks)-1].ID
		v.notice = "Task created"
	} else {
		id = v.form.taskID
		v.store.Dispatch(board.EditTask{ID: id, Updates: v.form.updates()})
		v.notice = "Task updated"
	}
	v.closeModal()
	v.focusTask(id)
}

func (v *BoardView) confirmDelete(t models.Task) {
	v.confirmingDelete = true
	v.deleteTargetID = t.ID
	v.deleteTargetName = t.Title
}

// drop ends the drag session and follows the task to its new column
func (v *BoardView) drop() {
	v.mouseDrag = false
	id := v.drag.Source()
	move, ok := v.drag.Drop()
	if !ok {
		v.notice = ""
		v.focusTask(id)
		return
	}
	t, _ := v.store.State().Task(move.TaskID)
	v.notice = fmt.Sprintf("Moved %q to %s", t.Title, v.store.Columns().Label(move.NewStatus))
	v.focusTask(move.TaskID)
}

func (v *BoardView) cancelDrag() {
	v.mouseDrag = false
	if v.drag.Active() {
		v.notice = ""
	}
	v.drag.Cancel()
}

// handleMouse implements pointer drag: press on a card picks it up, motion
// with the button held updates the candidate and release drops.
func (v *BoardView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if v.store.State().ShowModal || v.confirmingDelete || v.showHelpPopup {
		return nil
	}

	l := v.layout()
	p := drag.Point{X: msg.X, Y: msg.Y}
	regions := l.regions(v.store.Columns(), v.visibleSlice)
	v.drag.SetRegions(regions)

	if v.mouseDrag {
		switch msg.Action {
		case tea.MouseActionMotion:
			v.drag.PointerMove(p)
		case tea.MouseActionRelease:
			v.drag.PointerMove(p)
			v.drop()
		}
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if i, ok := l.columnAt(p); ok && !v.drag.Active() {
			v.col = i
			if msg.Button == tea.MouseButtonWheelUp && v.rows[i] > 0 {
				v.rows[i]--
			} else if msg.Button == tea.MouseButtonWheelDown && v.rows[i] < len(v.visibleTasks(i))-1 {
				v.rows[i]++
			}
			v.ensureVisible(i)
		}

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || v.drag.Active() {
			return nil
		}
		for _, r := range regions {
			if r.Kind != drag.RegionTask || !r.Rect.Contains(p) {
				continue
			}
			v.focusTask(r.ID)
			if v.drag.Begin(r.ID) {
				v.mouseDrag = true
				v.drag.PointerMove(p)
			}
			return nil
		}
		if i, ok := l.columnAt(p); ok {
			v.col = i
		}
	}
	return nil
}

func (v *BoardView) layout() layout {
	return newLayout(v.width, v.height, len(v.store.Columns()))
}

// visibleTasks returns the tasks of column i that match the search
func (v *BoardView) visibleTasks(i int) []models.Task {
	cols := v.store.Columns()
	if i < 0 || i >= len(cols) {
		return nil
	}
	tasks := v.store.State().Column(cols[i].Key)
	query := strings.ToLower(strings.TrimSpace(v.searchInput.Value()))
	if query == "" {
		return tasks
	}
	filtered := tasks[:0:0]
	for _, t := range tasks {
		if matches(t, query) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// visibleSlice returns the cards of column i that fit on screen
func (v *BoardView) visibleSlice(i int) []models.Task {
	tasks := v.visibleTasks(i)
	start := min(v.scroll[i], len(tasks))
	end := min(start+v.layout().visibleCards(), len(tasks))
	return tasks[start:end]
}

func matches(t models.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), query) ||
		strings.Contains(strings.ToLower(t.Assignee), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (v *BoardView) selectedTask() (models.Task, bool) {
	tasks := v.visibleTasks(v.col)
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	return tasks[clamp(v.rows[v.col], 0, len(tasks)-1)], true
}

// focusTask moves the cursor to the card of task id
func (v *BoardView) focusTask(id string) {
	t, ok := v.store.State().Task(id)
	if !ok {
		v.clampCursors()
		return
	}
	i := v.store.Columns().Index(t.Status)
	if i < 0 {
		v.clampCursors()
		return
	}
	v.col = i
	for row, ct := range v.visibleTasks(i) {
		if ct.ID == id {
			v.rows[i] = row
			break
		}
	}
	v.clampCursors()
	v.ensureVisible(i)
}

func (v *BoardView) ensureVisible(i int) {
	visible := v.layout().visibleCards()
	if v.rows[i] < v.scroll[i] {
		v.scroll[i] = v.rows[i]
	} else if v.rows[i] >= v.scroll[i]+visible {
		v.scroll[i] = v.rows[i] - visible + 1
	}
}

func (v *BoardView) clampCursors() {
	visible := v.layout().visibleCards()
	for i := range v.rows {
		n := len(v.visibleTasks(i))
		v.rows[i] = clamp(v.rows[i], 0, max(n-1, 0))
		v.scroll[i] = clamp(v.scroll[i], 0, max(n-visible, 0))
		v.ensureVisible(i)
	}
	v.col = clamp(v.col, 0, max(len(v.rows)-1, 0))
}
