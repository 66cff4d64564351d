package notes

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/kb/internal/knowledge"
	"github.com/Paintersrp/kb/internal/tui/browser"
	"github.com/Paintersrp/kb/utils"
)

// renderPreview renders the entry at path for a pane of the given width.
// Renders are cached per path and width until the next reload.
func (m *Model) renderPreview(path string, width int) string {
	cacheKey := fmt.Sprintf("%s@%d", path, width)
	if cached, ok := m.previews.Get(cacheKey); ok {
		return cached
	}

	entry, err := knowledge.ReadFile(path)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	rendered := previewHeader(entry, width) + "\n" + utils.RenderMarkdown(entry.Text, width)
	m.previews.Put(cacheKey, rendered)
	return rendered
}

func previewHeader(entry knowledge.Entry, width int) string {
	lines := []string{titleStyle.Render(entry.Title)}
	if entry.Description != "" {
		lines = append(lines, textStyle.Render(entry.Description))
	}
	if len(entry.Tags) > 0 {
		lines = append(lines, previewSummaryStyle.Render("#"+strings.Join(entry.Tags, " #")))
	}
	if summary := knowledge.Summary(entry.Text); summary != "" && summary != entry.Title {
		lines = append(lines, previewSummaryStyle.Render(summary))
	}

	header := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if width > 0 {
		header = lipgloss.NewStyle().MaxWidth(width).Render(header)
	}
	return header
}

// directorySummary describes a directory selected in the listing.
func directorySummary(path string) string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	visible := 0
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			visible++
		}
	}
	return directoryStyle.Render(fmt.Sprintf("directory · %d items", visible))
}

// showLeaf loads the entry at path into the reading viewport.
func (m *Model) showLeaf(path string) {
	m.viewport.SetContent(m.renderPreview(path, m.viewport.Width))
	m.viewport.GotoTop()
}

func (m *Model) resize() {
	m.viewport.Width = m.width - appStyle.GetHorizontalFrameSize()
	m.viewport.Height = m.bodyHeight()
	if m.viewport.Width < 0 {
		m.viewport.Width = 0
	}

	if f, ok := m.stack.Browser(); ok && f.Browser.Mode() == browser.ModeLeaf {
		m.showLeaf(f.Browser.Path())
	}
}
