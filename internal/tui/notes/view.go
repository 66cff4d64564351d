package notes

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/Paintersrp/kb/internal/state"
	"github.com/Paintersrp/kb/internal/tui/browser"
	"github.com/Paintersrp/kb/internal/tui/nav"
)

const (
	chromeHeight = 2
	minListWidth = 20
	clockFormat  = "15:04:05"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	body := m.renderFrame(m.stack.Top(), m.contentWidth(), m.bodyHeight())
	return appStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.titleBar(),
		body,
		m.statusBar(),
	))
}

func (m *Model) contentWidth() int {
	w := m.width - appStyle.GetHorizontalFrameSize()
	if w < 0 {
		return 0
	}
	return w
}

func (m *Model) bodyHeight() int {
	h := m.height - chromeHeight
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) titleBar() string {
	title := "kb"
	if f, ok := m.stack.Browser(); ok {
		title = "kb · " + f.Browser.Rel()
	}
	if f, ok := m.stack.Top().(*nav.EditorFrame); ok {
		if f.Source == "" {
			title += " · new entry"
		} else {
			title += " · editing " + filepath.Base(f.Source)
		}
	}
	return titleStyle.Copy().MaxWidth(m.contentWidth()).Render(title)
}

func (m *Model) renderFrame(f nav.Frame, width, height int) string {
	switch f := f.(type) {
	case *nav.BrowserFrame:
		return m.renderBrowser(f.Browser, width, height)
	case *nav.EditorFrame:
		return f.Editor.View(width, height)
	case *nav.DialogFrame:
		beneath := ""
		if under, ok := m.stack.Beneath(); ok {
			beneath = m.renderFrame(under, width, height)
		}
		return overlay(beneath, renderDialog(f), width, height)
	}
	return ""
}

func (m *Model) renderBrowser(b *browser.State, width, height int) string {
	if b.Mode() == browser.ModeLeaf {
		return m.viewport.View()
	}

	listWidth := width / 3
	if listWidth < minListWidth {
		listWidth = minListWidth
	}
	if listWidth > width {
		listWidth = width
	}
	previewWidth := width - listWidth - previewStyle.GetHorizontalFrameSize() - listStyle.GetHorizontalFrameSize()

	list := listStyle.Copy().
		Width(listWidth).
		Height(height).
		Render(renderListing(b, listWidth, height))
	if previewWidth <= 0 {
		return list
	}

	preview := previewStyle.Copy().
		Width(previewWidth).
		Height(height).
		MaxHeight(height).
		Render(m.selectionPreview(b, previewWidth, height))

	return lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
}

// renderListing draws the children of the current directory, windowed so
// the selection stays visible.
func renderListing(b *browser.State, width, height int) string {
	names := b.Entries()
	if len(names) == 0 {
		return textStyle.Render("(empty)")
	}

	idx, _ := b.Index()
	start := 0
	if idx >= height {
		start = idx - height + 1
	}
	end := start + height
	if end > len(names) {
		end = len(names)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name := names[i]
		style := textStyle
		if isDir(filepath.Join(b.Path(), name)) {
			name += "/"
			style = directoryStyle
		}
		name = truncate.StringWithTail(name, uint(max(width-1, 1)), "…")
		if i == idx {
			style = selectedItemStyle
		}
		lines = append(lines, style.Render(name))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) selectionPreview(b *browser.State, width, height int) string {
	path, ok := b.SelectedPath()
	if !ok {
		return ""
	}
	if isDir(path) {
		return directorySummary(path)
	}

	rendered := m.renderPreview(path, width)
	lines := strings.Split(rendered, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func renderDialog(f *nav.DialogFrame) string {
	buttons := make([]string, 0, 2)
	for _, c := range []nav.Choice{nav.Yes, nav.No} {
		style := buttonStyle
		if c == f.Choice {
			style = activeButtonStyle
		}
		buttons = append(buttons, style.Render(c.String()))
	}

	return dialogStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		textStyle.Render(f.Prompt),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
	))
}

// overlay replaces the middle rows of base with the centred box.
func overlay(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}

	boxRows := strings.Split(box, "\n")
	top := (height - len(boxRows)) / 2
	if top < 0 {
		top = 0
	}
	for i, line := range boxRows {
		if top+i >= len(rows) {
			rows = append(rows, "")
		}
		rows[top+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) statusBar() string {
	width := m.contentWidth()
	right := statusBannerStyle.Render(
		state.StatusLine(m.repo.Stats()) + " · " + m.now.Format(clockFormat),
	)

	var left string
	switch {
	case m.status.text != "" && m.status.err:
		left = errorStyle.Render(m.status.text)
	case m.status.text != "":
		left = statusBannerStyle.Render(m.status.text)
	default:
		left = renderHelpWithinWidth(width-lipgloss.Width(right)-1, helpLine(m.helpBindings()))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate.String(left, uint(max(width, 0)))
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) helpBindings() []key.Binding {
	switch f := m.stack.Top().(type) {
	case *nav.EditorFrame:
		// q types text in the editor, so ctrl+c is the only way out.
		return append(f.Editor.Keys().ShortHelp(), m.keys.forceQuit)
	case *nav.DialogFrame:
		return m.dialogKeys.shortHelp()
	}
	return m.keys.shortHelp()
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
