package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/kb/internal/pathutil"
)

// EntryChangedMsg reports a change below one of the watched directories.
type EntryChangedMsg struct {
	Path string
}

type WatcherErrMsg struct {
	Err error
}

// Watcher turns filesystem notifications under the data directories into
// messages for the running program.
type Watcher struct {
	watcher  *fsnotify.Watcher
	roots    []string
	ext      string
	done     chan struct{}
	once     sync.Once
	onChange func(string)
	onClose  func()
}

func NewWatcher(roots []string, ext string) (*Watcher, error) {
	normalized := make([]string, 0, len(roots))
	for _, r := range roots {
		if r = pathutil.NormalizePath(r); r != "" {
			normalized = append(normalized, r)
		}
	}
	if len(normalized) == 0 {
		return nil, errors.New("no directories to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		roots:   normalized,
		ext:     "." + strings.TrimPrefix(ext, "."),
		done:    make(chan struct{}),
	}

	for _, root := range normalized {
		if err := watcher.addRecursive(root); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}

	return watcher, nil
}

// Start returns a command that blocks until the next relevant change and
// reports it. The receiver re-issues Start after handling each message.
func (w *Watcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
						return w.changed(event.Name)
					}
				}

				if !w.isRelevant(event) {
					continue
				}

				return w.changed(event.Name)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return WatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *Watcher) changed(path string) tea.Msg {
	path = pathutil.NormalizePath(path)
	if w.onChange != nil {
		w.onChange(path)
	}
	return EntryChangedMsg{Path: path}
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		if w.onClose != nil {
			w.onClose()
		}
	})

	return closeErr
}

// OnChange registers a callback receiving the path of every reported change.
func (w *Watcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.onChange = fn
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *Watcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.onClose = fn
}

func (w *Watcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if path != normalized && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

// isRelevant accepts changes to entry files and removals or renames that may
// concern a directory. Hidden files and paths outside the roots are ignored.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if !w.watched(event.Name) {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}

	ext := filepath.Ext(base)
	if strings.EqualFold(ext, w.ext) {
		return true
	}

	return ext == "" && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) watched(path string) bool {
	for _, root := range w.roots {
		if pathutil.Within(root, path) {
			return true
		}
	}
	return false
}
