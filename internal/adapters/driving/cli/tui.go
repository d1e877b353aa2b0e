package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Search-as-you-type with debounced queries, filter toggles, selection
and clipboard export.

Controls:
  type    - Search (debounced)
  ↑/↓     - Navigate results
  Enter   - Save query to history
  Tab     - Cycle sort strategy
  Ctrl+S  - Toggle selection
  Ctrl+A  - Select all results
  Ctrl+X  - Clear selection
  Ctrl+Y  - Copy permission names
  Ctrl+R  - Refresh the catalog
  Esc     - Clear search
  Ctrl+C  - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errors.New("search session not configured")
	}

	// Panic recovery so a rendering bug still prints a stack trace
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app := tui.NewApp(session)
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
