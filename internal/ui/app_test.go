package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/kanban/internal/board"
)

func TestAppRoutesMessages(t *testing.T) {
	t.Parallel()

	store := board.NewStore(board.NewEnv(nil, ""), nil)
	app := NewApp(store, nil)

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if app.width != 100 || app.height != 30 {
		t.Errorf("Expected 100x30, got %dx%d", app.width, app.height)
	}

	app.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if store.State().DraggedTaskID != "1" {
		t.Fatalf("Expected task 1 picked up, got %q", store.State().DraggedTaskID)
	}
	app.Update(tea.BlurMsg{})
	if store.State().DraggedTaskID != "" {
		t.Error("Expected focus loss to cancel the drag")
	}

	if !strings.Contains(app.View(), "To Do") {
		t.Error("Expected the board to render")
	}
}

func TestAppQuit(t *testing.T) {
	t.Parallel()

	app := NewApp(board.NewStore(board.NewEnv(nil, ""), nil), []string{"Ada"})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
