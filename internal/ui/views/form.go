package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/ui/keys"
	"github.com/tgienger/kanban/internal/ui/styles"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDesc
	fieldStatus
	fieldPriority
	fieldAssignee
	fieldTags
	fieldSave
	fieldCount
)

// taskForm edits the fields of a new or existing task
type taskForm struct {
	taskID  string // empty for a new task
	columns models.Columns
	users   []string
	keys    keys.KeyMap

	title    textinput.Model
	desc     textarea.Model
	tags     textinput.Model
	status   models.Status
	priority models.Priority
	assignee string

	focus  formField
	errors models.ValidationErrors
}

// formResult is what the form asks the board to do after a key
type formResult int

const (
	formContinue formResult = iota
	formCancel
	formSubmit
)

func newTaskForm(columns models.Columns, users []string, km keys.KeyMap) *taskForm {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	tags := textinput.New()
	tags.Placeholder = "Design, UI/UX"
	tags.CharLimit = 200

	return &taskForm{
		columns:  columns,
		users:    users,
		keys:     km,
		title:    title,
		desc:     desc,
		tags:     tags,
		status:   columns.First(),
		priority: models.PriorityMedium,
	}
}

// load fills the form from an existing task
func (f *taskForm) load(t models.Task) {
	f.taskID = t.ID
	f.title.SetValue(t.Title)
	f.desc.SetValue(t.Description)
	f.tags.SetValue(strings.Join(t.Tags, ", "))
	f.status = t.Status
	f.priority = t.Priority
	f.assignee = t.Assignee
	f.setFocus(fieldTitle)
}

func (f *taskForm) setWidth(w int) {
	f.desc.SetWidth(w)
	f.title.Width = w
	f.tags.Width = w
}

func (f *taskForm) setFocus(field formField) {
	f.focus = field
	f.title.Blur()
	f.desc.Blur()
	f.tags.Blur()

	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDesc:
		f.desc.Focus()
	case fieldTags:
		f.tags.Focus()
	}
}

// validate records and returns the validation errors
func (f *taskForm) validate() bool {
	f.errors = models.Validate(f.title.Value(), f.assignee)
	return f.errors == nil
}

func (f *taskForm) fields() models.TaskFields {
	return models.TaskFields{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.desc.Value()),
		Status:      f.status,
		Priority:    f.priority,
		Assignee:    f.assignee,
		Tags:        models.ParseTags(f.tags.Value()),
	}
}

func (f *taskForm) updates() models.TaskUpdates {
	fields := f.fields()
	return models.TaskUpdates{
		Title:       &fields.Title,
		Description: &fields.Description,
		Status:      &fields.Status,
		Priority:    &fields.Priority,
		Assignee:    &fields.Assignee,
		Tags:        &fields.Tags,
	}
}

// cycle moves the focused choice field by delta
func (f *taskForm) cycle(delta int) {
	switch f.focus {
	case fieldStatus:
		cols := f.columns.Keys()
		f.status = cols[step(indexOf(cols, f.status), delta, len(cols))]
	case fieldPriority:
		all := models.Priorities()
		f.priority = all[step(indexOf(all, f.priority), delta, len(all))]
	case fieldAssignee:
		if len(f.users) == 0 {
			return
		}
		f.assignee = f.users[step(indexOf(f.users, f.assignee), delta, len(f.users))]
		delete(f.errors, "assignee")
	}
}

func (f *taskForm) choiceFocused() bool {
	return f.focus == fieldStatus || f.focus == fieldPriority || f.focus == fieldAssignee
}

func (f *taskForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return formCancel, nil

	case key.Matches(msg, f.keys.Save):
		return formSubmit, nil

	case key.Matches(msg, f.keys.Tab):
		f.setFocus((f.focus + 1) % fieldCount)
		return formContinue, nil

	case key.Matches(msg, f.keys.ShiftTab):
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return formContinue, nil

	case key.Matches(msg, f.keys.Enter):
		switch f.focus {
		case fieldSave:
			return formSubmit, nil
		case fieldDesc:
			// newlines in the description
		default:
			f.setFocus(f.focus + 1)
			return formContinue, nil
		}

	case f.choiceFocused() && key.Matches(msg, f.keys.Left):
		f.cycle(-1)
		return formContinue, nil

	case f.choiceFocused() && (key.Matches(msg, f.keys.Right) || key.Matches(msg, f.keys.Grab)):
		f.cycle(1)
		return formContinue, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
		if strings.TrimSpace(f.title.Value()) != "" {
			delete(f.errors, "title")
		}
	case fieldDesc:
		f.desc, cmd = f.desc.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	}
	return formContinue, cmd
}

func (f *taskForm) view(s *styles.Styles, width int) string {
	formTitle := "New Task"
	if f.taskID != "" {
		formTitle = "Edit Task"
	}

	style := func(field formField, errKey string) lipgloss.Style {
		switch {
		case f.errors[errKey] != "":
			return s.InputError
		case f.focus == field:
			return s.InputFocused
		}
		return s.Input
	}
	errLine := func(errKey string) string {
		if msg := f.errors[errKey]; msg != "" {
			return s.ErrorText.Render(msg)
		}
		return ""
	}
	choice := func(field formField, errKey, label string) string {
		return style(field, errKey).Width(width).Render("‹ " + label + " ›")
	}

	assignee := f.assignee
	if assignee == "" {
		assignee = "Select assignee"
	}

	btnStyle := s.Button
	if f.focus == fieldSave {
		btnStyle = s.ButtonFocused
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Title:",
		style(fieldTitle, "title").Width(width).Render(f.title.View()),
		errLine("title"),
		"Description:",
		style(fieldDesc, "").Render(f.desc.View()),
		"Status:",
		choice(fieldStatus, "", f.columns.Label(f.status)),
		"Priority:",
		choice(fieldPriority, "", lipgloss.NewStyle().Foreground(styles.PriorityColor(f.priority)).Render(f.priority.Label())),
		"Assignee:",
		choice(fieldAssignee, "assignee", assignee),
		errLine("assignee"),
		"Tags (comma separated):",
		style(fieldTags, "").Width(width).Render(f.tags.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ←→: choose • Ctrl+S: save • Esc: cancel"),
	)
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

// step moves i by delta around a ring of n. From -1 (no current choice)
// forward lands on the first element and backward on the last.
func step(i, delta, n int) int {
	if i < 0 {
		if delta > 0 {
			return 0
		}
		return n - 1
	}
	return ((i+delta)%n + n) % n
}
