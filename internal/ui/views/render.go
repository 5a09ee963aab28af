package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/ui/styles"
)

// View renders the view
func (v *BoardView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.store.State().ShowModal {
		if v.mode == modalForm && v.form != nil {
			return v.renderForm()
		}
		if t, ok := v.store.State().EditingTask(); ok {
			return v.renderDetail(t)
		}
	}

	l := v.layout()
	var b strings.Builder

	// Header and status each take exactly one row; mouse regions depend on it.
	b.WriteString(v.renderHeader(l))
	b.WriteString("\n")
	b.WriteString(v.renderStatus(l))
	b.WriteString("\n\n")
	b.WriteString(v.renderColumns(l))
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *BoardView) boardWidth(l layout) int {
	return l.columns*l.colWidth + (l.columns-1)*colGap
}

func (v *BoardView) renderHeader(l layout) string {
	s := v.styles
	st := v.store.State()
	stats := models.Summarize(st.Tasks)

	parts := []string{s.Stat.Render(fmt.Sprintf("%d", stats.Total)) + s.TitleMuted.Render(" tasks")}
	for _, col := range v.store.Columns() {
		count := lipgloss.NewStyle().Foreground(styles.ColumnColor(col)).Bold(true).Render(fmt.Sprintf("%d", stats.ByStatus[col.Key]))
		parts = append(parts, count+s.TitleMuted.Render(" "+strings.ToLower(col.Label)))
	}

	line := s.Title.Render("Kanban Board") + "  " + strings.Join(parts, s.TitleMuted.Render(" · "))
	return ansi.Truncate(line, v.boardWidth(l), "…")
}

func (v *BoardView) renderStatus(l layout) string {
	s := v.styles
	var line string
	switch {
	case v.searching || v.searchInput.Value() != "":
		line = v.searchInput.View()
	case v.store.Err() != nil:
		line = s.StatusError.Render("Changes are not being saved: " + v.store.Err().Error())
	case v.notice != "":
		line = s.StatusBar.Render(v.notice)
	}
	return ansi.Truncate(line, v.boardWidth(l), "…")
}

func (v *BoardView) renderColumns(l layout) string {
	cols := v.store.Columns()
	blocks := make([]string, 0, 2*len(cols))
	for i := range cols {
		if i > 0 {
			blocks = append(blocks, strings.Repeat(" ", colGap))
		}
		blocks = append(blocks, v.renderColumn(i, l))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (v *BoardView) renderColumn(i int, l layout) string {
	s := v.styles
	col := v.store.Columns()[i]
	inner := l.innerWidth()

	style := s.Column
	if i == v.col && !v.drag.Active() {
		style = s.ColumnFocused
	}
	if key, ok := v.drag.CandidateColumn(); ok && v.drag.Active() && key == col.Key {
		style = s.ColumnDrop
	}

	tasks := v.visibleTasks(i)
	label := s.ColumnHeader.Foreground(styles.ColumnColor(col)).Render(col.Label)
	count := s.TitleMuted.Render(fmt.Sprintf("(%d)", len(tasks)))
	lines := []string{ansi.Truncate(label+" "+count, inner, "…"), ""}

	if len(tasks) == 0 {
		lines = append(lines, s.TitleMuted.Padding(0, 1).Render("No tasks"))
	}
	for slot, t := range v.visibleSlice(i) {
		selected := i == v.col && v.scroll[i]+slot == v.rows[i]
		lines = append(lines, v.renderCard(t, selected, inner), "")
	}

	return style.Width(inner).Height(l.colHeight - 2).Render(strings.Join(lines, "\n"))
}

// renderCard draws a task in two rows: title, then priority, assignee
// initials and tags
func (v *BoardView) renderCard(t models.Task, selected bool, width int) string {
	s := v.styles
	style := s.Card
	if selected {
		style = s.CardSelected
	}
	if t.ID == v.store.State().DraggedTaskID {
		style = s.CardDragged
	}
	text := max(width-2, 1)

	priority := lipgloss.NewStyle().Foreground(styles.PriorityColor(t.Priority)).Render("● " + t.Priority.Label())
	avatar := lipgloss.NewStyle().Foreground(styles.AvatarColor(t.Assignee)).Bold(true).Render(models.Initials(t.Assignee))
	meta := priority + "  " + avatar
	if len(t.Tags) > 0 {
		meta += "  " + lipgloss.NewStyle().Foreground(styles.TagColor(models.TagCategory(t))).Render(strings.Join(t.Tags, " "))
	}

	return style.Width(width).Render(
		ansi.Truncate(t.Title, text, "…") + "\n" + ansi.Truncate(meta, text, "…"),
	)
}

func (v *BoardView) renderHelp() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 60 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}

	if v.drag.Active() {
		return s.Help.Render(
			fmt.Sprintf("%s column • %s drop • %s cancel",
				s.HelpKey.Render("←→"),
				s.HelpKey.Render("space"),
				s.HelpKey.Render("esc"),
			),
		)
	}

	return s.Help.Render(
		fmt.Sprintf("%s move • %s pick up • %s view • %s edit • %s new • %s del • %s search • %s help • %s quit",
			s.HelpKey.Render("←↑↓→"),
			s.HelpKey.Render("space"),
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("?"),
			s.HelpKey.Render("q"),
		),
	)
}

func (v *BoardView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("←→") + "     focus column",
		s.HelpKey.Render("↑↓") + "     select task",
		s.HelpKey.Render("space") + "  pick up, then ←→ and space to drop",
		s.HelpKey.Render("mouse") + "  drag a card onto a column",
		s.HelpKey.Render("↵") + "      view task",
		s.HelpKey.Render("e") + "      edit task",
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("/") + "      search",
		s.HelpKey.Render("esc") + "    cancel / clear search",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed from the board.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderForm() string {
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-10, 20, 50)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		v.styles.Modal.Render(v.form.view(v.styles, inputWidth)),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderDetail(t models.Task) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	textWidth := clamp(contentWidth-10, 20, 70)
	labelStyle := s.TitleMuted

	tagsLine := s.TitleMuted.Render("None")
	if len(t.Tags) > 0 {
		tagStyle := lipgloss.NewStyle().Foreground(styles.TagColor(models.TagCategory(t)))
		tagsLine = tagStyle.Render(strings.Join(t.Tags, " "))
	}

	descText := t.Description
	if descText == "" {
		descText = s.TitleMuted.Render("No description")
	}

	helpText := s.Help.Render(
		fmt.Sprintf("%s edit • %s priority • %s delete • %s back",
			s.HelpKey.Render("e"),
			s.HelpKey.Render("p"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("esc"),
		),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.MarginBottom(1).Render(t.Title),
		labelStyle.Render("Status"),
		v.store.Columns().Label(t.Status),
		"",
		labelStyle.Render("Priority"),
		lipgloss.NewStyle().Foreground(styles.PriorityColor(t.Priority)).Bold(true).Render(t.Priority.Label()),
		"",
		labelStyle.Render("Assignee"),
		lipgloss.NewStyle().Foreground(styles.AvatarColor(t.Assignee)).Bold(true).Render(models.Initials(t.Assignee))+" "+t.Assignee,
		"",
		labelStyle.Render("Tags"),
		tagsLine,
		"",
		labelStyle.Render("Description"),
		lipgloss.NewStyle().Width(textWidth).Render(descText),
		"",
		labelStyle.Render("Created"),
		t.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"),
		"",
		helpText,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
