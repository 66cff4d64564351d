package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/kb/internal/tui/textarea"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true)

	fieldStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#334455")).
			Padding(0, 1)

	focusedFieldStyle = fieldStyle.Copy().
				BorderForeground(lipgloss.Color("#0AF"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#0AF")).
			Foreground(lipgloss.Color("#FFF"))
)

// View renders the three fields stacked vertically within width x height.
// The body gets whatever height the single-line fields leave.
func (e *Editor) View(width, height int) string {
	inner := width - fieldStyle.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	// label + bordered single row
	singleHeight := 1 + 1 + fieldStyle.GetVerticalFrameSize()
	bodyRows := height - 2*singleHeight - 1 - fieldStyle.GetVerticalFrameSize()
	if bodyRows < 1 {
		bodyRows = 1
	}

	sections := make([]string, 0, int(fieldCount))
	for f := FieldTitle; f < fieldCount; f++ {
		rows := 1
		if f == FieldBody {
			rows = bodyRows
		}
		sections = append(sections, e.renderField(f, inner, rows))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (e *Editor) renderField(f Field, width, rows int) string {
	focused := e.Focus() == f
	style := fieldStyle
	if focused {
		style = focusedFieldStyle
	}

	content := renderBuffer(e.buffers[f], focused, rows)
	box := style.Width(width + style.GetHorizontalPadding()).Render(content)
	return labelStyle.Render(f.String()) + "\n" + box
}

// renderBuffer draws at most rows lines, scrolled so the cursor row is
// visible, with the cursor highlighted when focused.
func renderBuffer(b *textarea.Buffer, focused bool, rows int) string {
	lines := b.Lines()
	row, col := b.Cursor()

	start := 0
	if row >= rows {
		start = row - rows + 1
	}
	end := start + rows
	if end > len(lines) {
		end = len(lines)
	}

	out := make([]string, 0, rows)
	for i := start; i < end; i++ {
		line := lines[i]
		if focused && i == row {
			line = withCursor(line, col)
		}
		out = append(out, line)
	}
	for len(out) < rows {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func withCursor(line string, col int) string {
	runes := []rune(line)
	if col >= len(runes) {
		return line + cursorStyle.Render(" ")
	}
	return string(runes[:col]) + cursorStyle.Render(string(runes[col])) + string(runes[col+1:])
}
