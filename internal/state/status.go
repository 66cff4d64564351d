package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/Paintersrp/kb/internal/repository"
)

// StatusLine summarises the repository for the status bar.
func StatusLine(stats repository.Stats) string {
	parts := []string{fmt.Sprintf("%d entries", stats.Entries), fmt.Sprintf("%d tags", stats.Tags)}
	if stats.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.Skipped))
	}
	if !stats.LoadedAt.IsZero() {
		parts = append(parts, fmt.Sprintf("loaded %s", formatLoadTime(stats.LoadedAt)))
	}

	return strings.Join(parts, " · ")
}

func formatLoadTime(t time.Time) string {
	return t.Local().Format("15:04")
}
