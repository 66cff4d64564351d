// Package notes is the interactive browser and editor for knowledge entries.
// It owns the navigation stack and routes every input and tick to its top
// frame.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kb/internal/cache"
	"github.com/Paintersrp/kb/internal/constants"
	"github.com/Paintersrp/kb/internal/event"
	"github.com/Paintersrp/kb/internal/knowledge"
	"github.com/Paintersrp/kb/internal/repository"
	"github.com/Paintersrp/kb/internal/state"
	"github.com/Paintersrp/kb/internal/tui/browser"
	"github.com/Paintersrp/kb/internal/tui/editor"
	"github.com/Paintersrp/kb/internal/tui/nav"
)

const statusLifetime = 4 * time.Second

type statusMessage struct {
	text    string
	err     bool
	expires time.Time
}

type Model struct {
	stack      *nav.Stack
	repo       *repository.Repository
	ticker     *event.Ticker
	watcher    *state.Watcher
	keys       *browserKeyMap
	dialogKeys *dialogKeyMap
	viewport   viewport.Model
	previews   *cache.LRUCache[string, string]
	status     statusMessage
	now        time.Time
	width      int
	height     int
	quitting   bool
}

// New builds the controller with the browser as its bottom frame. The
// watcher may be nil.
func New(
	repo *repository.Repository,
	b *browser.State,
	ticker *event.Ticker,
	watcher *state.Watcher,
) *Model {
	m := &Model{
		stack:      nav.New(&nav.BrowserFrame{Browser: b}),
		repo:       repo,
		ticker:     ticker,
		watcher:    watcher,
		keys:       newBrowserKeyMap(),
		dialogKeys: newDialogKeyMap(),
		viewport:   viewport.New(0, 0),
		previews:   cache.NewLRUCache[string, string](constants.PreviewCacheSize),
		now:        time.Now(),
	}

	if problems := repo.Problems(); len(problems) > 0 {
		m.setError(fmt.Errorf("skipped %d files: %w", len(problems), problems[0]))
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.ticker.Next(), m.watcher.Start())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	if ev, ok := event.FromMsg(msg); ok {
		switch ev.Kind {
		case event.Input:
			return m, m.handleKey(ev.Key)
		case event.Tick:
			m.tick(ev.At)
			return m, m.ticker.Next()
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case state.EntryChangedMsg:
		m.reload()
		return m, m.watcher.Start()

	case state.WatcherErrMsg:
		slog.Error("watcher error", "err", msg.Err)
		m.setError(msg.Err)
		return m, m.watcher.Start()
	}

	return m, nil
}

func (m *Model) tick(at time.Time) {
	m.now = at
	if m.status.text != "" && !m.status.expires.IsZero() && at.After(m.status.expires) {
		m.status = statusMessage{}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.forceQuit) {
		return m.quit()
	}

	switch f := m.stack.Top().(type) {
	case *nav.BrowserFrame:
		return m.handleBrowserKey(f, msg)
	case *nav.EditorFrame:
		return m.handleEditorKey(f, msg)
	case *nav.DialogFrame:
		return m.handleDialogKey(f, msg)
	}
	return nil
}

func (m *Model) handleBrowserKey(f *nav.BrowserFrame, msg tea.KeyMsg) tea.Cmd {
	b := f.Browser
	leaf := b.Mode() == browser.ModeLeaf

	switch {
	case key.Matches(msg, m.keys.quit):
		if _, err := m.stack.Pop(); errors.Is(err, nav.ErrLastFrame) {
			return m.quit()
		}

	case leaf && key.Matches(msg, m.keys.next):
		m.viewport.LineDown(1)
	case leaf && key.Matches(msg, m.keys.prev):
		m.viewport.LineUp(1)

	case key.Matches(msg, m.keys.next):
		b.Next()
	case key.Matches(msg, m.keys.prev):
		b.Prev()

	case key.Matches(msg, m.keys.enter):
		if err := b.Enter(); err != nil {
			m.setError(err)
			break
		}
		if b.Mode() == browser.ModeLeaf {
			m.showLeaf(b.Path())
		}

	case key.Matches(msg, m.keys.leave):
		moved, err := b.Leave()
		if err != nil {
			m.setError(err)
		} else if !moved {
			m.setStatus("already at the top")
		}

	case key.Matches(msg, m.keys.add):
		m.stack.Push(&nav.EditorFrame{Editor: editor.New()})

	case key.Matches(msg, m.keys.edit):
		m.openEditor(b)

	case key.Matches(msg, m.keys.delete):
		m.confirmDelete(b)

	case key.Matches(msg, m.keys.copy):
		path := b.Path()
		if !leaf {
			if p, ok := b.SelectedPath(); ok {
				path = p
			}
		}
		if err := clipboard.WriteAll(path); err != nil {
			m.setError(fmt.Errorf("copy path: %w", err))
		} else {
			m.setStatus("copied " + path)
		}

	case key.Matches(msg, m.keys.refresh):
		m.reload()

	case leaf:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	return nil
}

// target returns the file an edit or delete applies to: the open entry in
// leaf mode, otherwise the selected child.
func target(b *browser.State) (string, bool, bool) {
	if b.Mode() == browser.ModeLeaf {
		return b.Path(), false, true
	}
	path, ok := b.SelectedPath()
	if !ok {
		return "", false, false
	}
	return path, b.SelectedIsDir(), true
}

func (m *Model) openEditor(b *browser.State) {
	path, isDir, ok := target(b)
	if !ok {
		return
	}
	if isDir {
		m.setStatus("select an entry to edit")
		return
	}

	entry, err := knowledge.ReadFile(path)
	if err != nil {
		m.setError(err)
		return
	}

	ed := editor.New()
	ed.Load(entry)
	m.stack.Push(&nav.EditorFrame{Editor: ed, Source: path})
}

func (m *Model) confirmDelete(b *browser.State) {
	path, isDir, ok := target(b)
	if !ok {
		return
	}

	var cmd nav.Command = nav.DeleteFile{Path: path}
	if isDir {
		cmd = nav.DeleteDirectory{Path: path}
	}
	m.stack.Push(nav.NewDialog(cmd))
}

func (m *Model) handleEditorKey(f *nav.EditorFrame, msg tea.KeyMsg) tea.Cmd {
	switch f.Editor.HandleKey(msg) {
	case editor.IntentCommit:
		m.stack.Push(nav.NewDialog(nav.SaveEntry{
			Entry:  f.Editor.Entry(),
			Source: f.Source,
		}))
	case editor.IntentCancel:
		m.stack.Push(nav.NewDialog(nav.DiscardEdit{}))
	}
	return nil
}

func (m *Model) handleDialogKey(f *nav.DialogFrame, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.dialogKeys.toggle):
		f.Choice = f.Choice.Toggle()

	case key.Matches(msg, m.dialogKeys.confirm):
		if _, err := m.stack.Pop(); err != nil {
			return m.quit()
		}
		if f.Choice == nav.Yes {
			m.dispatch(f.Pending)
		}

	case key.Matches(msg, m.dialogKeys.cancel):
		if _, err := m.stack.Pop(); err != nil {
			return m.quit()
		}
	}
	return nil
}

// quit stops the tick and the watcher and ends the program.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.ticker.Stop()
	if err := m.watcher.Close(); err != nil {
		slog.Error("failed to close watcher", "err", err)
	}
	return tea.Quit
}

// reload rereads the repository and relists the browser.
func (m *Model) reload() {
	if err := m.repo.Load(context.Background()); err != nil {
		slog.Error("failed to reload entries", "err", err)
		m.setError(err)
	}
	m.previews.Purge()
	m.refreshBrowser()
}

func (m *Model) refreshBrowser() {
	f, ok := m.stack.Browser()
	if !ok {
		return
	}
	if err := f.Browser.Refresh(); err != nil {
		m.setError(err)
		return
	}
	if f.Browser.Mode() == browser.ModeLeaf {
		m.showLeaf(f.Browser.Path())
	}
}

func (m *Model) setStatus(text string) {
	m.status = statusMessage{text: text, expires: m.now.Add(statusLifetime)}
}

func (m *Model) setError(err error) {
	m.status = statusMessage{text: err.Error(), err: true, expires: m.now.Add(2 * statusLifetime)}
}

// Stack exposes the navigation stack for inspection.
func (m *Model) Stack() *nav.Stack {
	return m.stack
}

func (m *Model) Status() (string, bool) {
	return m.status.text, m.status.err
}
