package notes

import (
	"fmt"
	"log/slog"

	"github.com/Paintersrp/kb/internal/tui/nav"
)

// dispatch runs a confirmed dialog command. The dialog has already been
// popped. A failing command leaves the stack as it is and reports the error.
func (m *Model) dispatch(cmd nav.Command) {
	switch c := cmd.(type) {
	case nav.SaveEntry:
		path, err := m.repo.Save(c.Entry, c.Source)
		if err != nil {
			slog.Error("failed to save entry", "title", c.Entry.Title, "err", err)
			m.setError(fmt.Errorf("save failed: %w", err))
			return
		}
		m.popEditor()
		m.setStatus("saved " + path)

	case nav.DiscardEdit:
		m.popEditor()

	case nav.DeleteFile:
		if err := m.repo.Remove(c.Path); err != nil {
			slog.Error("failed to delete file", "path", c.Path, "err", err)
			m.setError(err)
			return
		}
		m.setStatus("deleted " + c.Path)

	case nav.DeleteDirectory:
		if err := m.repo.RemoveAll(c.Path); err != nil {
			slog.Error("failed to delete directory", "path", c.Path, "err", err)
			m.setError(err)
			return
		}
		m.setStatus("deleted " + c.Path)
	}

	m.reload()
}

func (m *Model) popEditor() {
	if _, ok := m.stack.Top().(*nav.EditorFrame); !ok {
		return
	}
	_, _ = m.stack.Pop()
}
