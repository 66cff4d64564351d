package notes

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kb/internal/event"
	"github.com/Paintersrp/kb/internal/state"
	"github.com/Paintersrp/kb/internal/tui/browser"
)

// Run starts the interactive browser over the repository root and blocks
// until the user quits.
func Run(s *state.State) error {
	b, err := browser.New(s.Repository.Root(), s.Config.Extension)
	if err != nil {
		return err
	}

	watcher, err := s.Watch()
	if err != nil {
		slog.Warn("file watching disabled", "err", err)
		watcher = nil
	}

	ticker := event.NewTicker(s.Config.TickInterval)
	m := New(s.Repository, b, ticker, watcher)

	slog.Info("starting browser", "root", b.Root(), "tick", ticker.Interval())
	if _, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
