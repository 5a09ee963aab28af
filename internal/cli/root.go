package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/kanban/internal/ui"
)

// BuildInfo is set via ldflags in main
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var (
	cfgFile string
	build   BuildInfo
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "kanban",
		Short: "A single-user task board for the terminal",
		Long: `kanban keeps a board of tasks in columns.

Run without arguments to open the board. Tasks can be dragged between
columns with the mouse or picked up with space and moved with the arrow keys.`,
		RunE:          runBoard, // Default action is the board
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/kanban/config.yaml)")
}

// Execute runs the root command
func Execute(info BuildInfo) error {
	build = info

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = info.Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kanban %s (commit: %s, built: %s)\n", build.Version, build.Commit, build.Date)
	},
}

func runBoard(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	app := ui.NewApp(s.store, s.cfg.Board.Users)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
