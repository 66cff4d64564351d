package utils

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

const (
	defaultWrapWidth       = 100
	previewHorizontalSpace = 4
)

func AppendIfNotExists(slice []string, value string) []string {
	for _, v := range slice {
		if v == value {
			return slice
		}
	}
	return append(slice, value)
}

// RenderMarkdown renders content with glamour for a pane of the given width.
// Rendering failures fall back to the raw content so the preview never goes blank.
func RenderMarkdown(content string, width int) string {
	wrapWidth := width - previewHorizontalSpace
	if wrapWidth <= 0 {
		wrapWidth = defaultWrapWidth
	}

	// Initiate glamour renderer to add colors to our markdown preview
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(wrapWidth),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return content
	}

	markdown, err := r.Render(content)
	if err != nil {
		return content
	}

	return markdown
}
