package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/ui/views"
)

// App is the root bubbletea model
type App struct {
	store  *board.Store
	board  *views.BoardView
	width  int
	height int
}

// NewApp creates the application around store. users is the set of
// assignees the task form offers.
func NewApp(store *board.Store, users []string) *App {
	if len(users) == 0 {
		users = []string{board.FallbackAssignee}
	}
	return &App{
		store: store,
		board: views.NewBoardView(store, users),
	}
}

func (a *App) Init() tea.Cmd {
	return a.board.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
	}

	_, cmd := a.board.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.board.View()
}
