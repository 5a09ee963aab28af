package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the board",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var moveCmd = &cobra.Command{
	Use:   "move <id> <status>",
	Short: "Move a task to another column",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().StringP("status", "s", "", "Column key (default: first column)")
	addCmd.Flags().StringP("priority", "p", string(models.PriorityMedium), "low, medium or high")
	addCmd.Flags().StringP("assignee", "a", "", "Assignee (default: board.default_assignee)")
	addCmd.Flags().StringSliceP("tag", "t", nil, "Tag, repeatable or comma separated")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.Close()

	printBoard(cmd.OutOrStdout(), s.store.Columns(), s.store.State())
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	description, _ := cmd.Flags().GetString("description")
	status, _ := cmd.Flags().GetString("status")
	priority, _ := cmd.Flags().GetString("priority")
	assignee, _ := cmd.Flags().GetString("assignee")
	tags, _ := cmd.Flags().GetStringSlice("tag")

	s, err := openSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.Close()

	if assignee == "" {
		assignee = s.cfg.Board.DefaultAssignee
	}
	fields := models.TaskFields{
		Title:       strings.Join(args, " "),
		Description: description,
		Status:      models.Status(status),
		Priority:    models.Priority(priority),
		Assignee:    assignee,
		Tags:        models.ParseTags(strings.Join(tags, ",")),
	}
	task, err := addTask(s.store, s.cfg.Board.Users, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q to %s\n", shortID(task.ID), task.Title, s.store.Columns().Label(task.Status))
	return s.store.Err()
}

func runMove(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := moveTask(s.store, args[0], models.Status(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s\n", task.Title, s.store.Columns().Label(task.Status))
	return s.store.Err()
}

func runRm(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := deleteTask(s.store, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", task.Title)
	return s.store.Err()
}

// addTask validates fields and dispatches the add. The new task is the last
// one in the collection.
func addTask(store *board.Store, users []string, f models.TaskFields) (models.Task, error) {
	if errs := models.Validate(f.Title, f.Assignee); errs != nil {
		return models.Task{}, validationError(errs)
	}
	if f.Status != "" && !store.Columns().Has(f.Status) {
		return models.Task{}, fmt.Errorf("unknown status %q (columns: %s)", f.Status, columnKeys(store.Columns()))
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return models.Task{}, fmt.Errorf("unknown priority %q", f.Priority)
	}
	if len(users) > 0 && !contains(users, f.Assignee) {
		return models.Task{}, fmt.Errorf("unknown assignee %q (users: %s)", f.Assignee, strings.Join(users, ", "))
	}

	st := store.Dispatch(board.AddTask{Fields: f})
	return st.Tasks[len(st.Tasks)-1], nil
}

// moveTask moves the task referenced by ref. Moving to the current column
// succeeds without changing anything.
func moveTask(store *board.Store, ref string, status models.Status) (models.Task, error) {
	task, err := store.Resolve(ref)
	if err != nil {
		return models.Task{}, err
	}
	if !store.Columns().Has(status) {
		return models.Task{}, fmt.Errorf("unknown status %q (columns: %s)", status, columnKeys(store.Columns()))
	}
	st := store.Dispatch(board.MoveTask{TaskID: task.ID, NewStatus: status})
	moved, _ := st.Task(task.ID)
	return moved, nil
}

func deleteTask(store *board.Store, ref string) (models.Task, error) {
	task, err := store.Resolve(ref)
	if err != nil {
		return models.Task{}, err
	}
	store.Dispatch(board.DeleteTask{ID: task.ID})
	return task, nil
}

func validationError(errs models.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, msg := range errs {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return errors.New(strings.Join(msgs, "; "))
}

func columnKeys(cols models.Columns) string {
	keys := make([]string, len(cols))
	for i, k := range cols.Keys() {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

var priorityColors = map[models.Priority]lipgloss.Color{
	models.PriorityLow:    lipgloss.Color("#9ece6a"),
	models.PriorityMedium: lipgloss.Color("#e0af68"),
	models.PriorityHigh:   lipgloss.Color("#f7768e"),
}

// printBoard writes each column and its tasks
func printBoard(w io.Writer, cols models.Columns, st board.State) {
	stats := models.Summarize(st.Tasks)
	for i, col := range cols {
		if i > 0 {
			fmt.Fprintln(w)
		}
		style := headerStyle
		if col.Color != "" {
			style = style.Foreground(lipgloss.Color(col.Color))
		}
		fmt.Fprintf(w, "%s %s\n", style.Render(cols.Label(col.Key)), mutedStyle.Render(fmt.Sprintf("(%d)", stats.ByStatus[col.Key])))

		tasks := st.Column(col.Key)
		if len(tasks) == 0 {
			fmt.Fprintln(w, mutedStyle.Render("  no tasks"))
			continue
		}
		for _, t := range tasks {
			prio := lipgloss.NewStyle().Foreground(priorityColors[t.Priority]).Render(fmt.Sprintf("%-6s", t.Priority.Label()))
			line := fmt.Sprintf("  %s  %s %s  %s", mutedStyle.Render(shortID(t.ID)), prio, t.Title, mutedStyle.Render(t.Assignee))
			if len(t.Tags) > 0 {
				line += mutedStyle.Render("  #" + strings.Join(t.Tags, " #"))
			}
			fmt.Fprintln(w, line)
		}
	}
}
