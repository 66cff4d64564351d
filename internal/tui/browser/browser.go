// Package browser tracks the directory being browsed, its listing and the
// wrap-around selection within it.
package browser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/kb/internal/pathutil"
	"github.com/Paintersrp/kb/utils"
)

var ErrNotDirectory = errors.New("not a directory")

type Mode int

const (
	ModeDirectory Mode = iota
	ModeLeaf
)

func (m Mode) String() string {
	if m == ModeLeaf {
		return "leaf"
	}
	return "directory"
}

// State is the browser's position below a fixed root. In ModeLeaf the path
// names a file and the listing is empty.
type State struct {
	root     string
	ext      string
	segments []string
	mode     Mode
	entries  []string
	cycle    utils.Cycle
}

// New opens root for browsing. Root must be an existing directory.
func New(root, ext string) (*State, error) {
	root = pathutil.NormalizePath(root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open browser root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open browser root %s: %w", root, ErrNotDirectory)
	}

	s := &State{root: root, ext: "." + strings.TrimPrefix(ext, ".")}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) Root() string {
	return s.root
}

// Path is the absolute path currently shown.
func (s *State) Path() string {
	return filepath.Join(append([]string{s.root}, s.segments...)...)
}

// Rel is Path relative to the root, "." at the root.
func (s *State) Rel() string {
	if len(s.segments) == 0 {
		return "."
	}
	return strings.Join(s.segments, "/")
}

func (s *State) Mode() Mode {
	return s.mode
}

func (s *State) AtRoot() bool {
	return len(s.segments) == 0
}

func (s *State) Entries() []string {
	return append([]string(nil), s.entries...)
}

// Index returns the selected position and false when nothing is selectable.
func (s *State) Index() (int, bool) {
	return s.cycle.Current()
}

func (s *State) Selected() (string, bool) {
	idx, ok := s.cycle.Current()
	if !ok {
		return "", false
	}
	return s.entries[idx], true
}

func (s *State) SelectedPath() (string, bool) {
	name, ok := s.Selected()
	if !ok {
		return "", false
	}
	return filepath.Join(s.Path(), name), true
}

// SelectedIsDir reports whether the selected child is a directory.
func (s *State) SelectedIsDir() bool {
	path, ok := s.SelectedPath()
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (s *State) Next() (int, bool) {
	return s.cycle.Next()
}

func (s *State) Prev() (int, bool) {
	return s.cycle.Prev()
}

// Select moves the selection to name if it is listed.
func (s *State) Select(name string) bool {
	for i, e := range s.entries {
		if e == name {
			s.cycle.Set(i)
			return true
		}
	}
	return false
}

// Enter descends into the selected child. A file switches the browser to
// ModeLeaf. Without a selection, or in ModeLeaf, nothing happens.
func (s *State) Enter() error {
	if s.mode == ModeLeaf {
		return nil
	}
	name, ok := s.Selected()
	if !ok {
		return nil
	}

	s.segments = append(s.segments, name)
	if err := s.reload(); err != nil {
		s.segments = s.segments[:len(s.segments)-1]
		_ = s.reload()
		return err
	}
	return nil
}

// Leave returns to the parent and reselects the child that was left. At the
// root, or when the parent cannot be listed, it reports false and stays put.
func (s *State) Leave() (bool, error) {
	if s.AtRoot() {
		return false, nil
	}

	child := s.segments[len(s.segments)-1]
	selected, _ := s.Selected()
	s.segments = s.segments[:len(s.segments)-1]
	if err := s.reload(); err != nil {
		s.segments = append(s.segments, child)
		_ = s.reload()
		s.Select(selected)
		return false, err
	}
	s.Select(child)
	return true, nil
}

// Refresh relists the current path from disk. The selected name is kept when
// it still exists. Segments that disappeared are dropped until an existing
// directory is reached.
func (s *State) Refresh() error {
	selected, hadSelection := s.Selected()
	if s.mode == ModeLeaf && len(s.segments) > 0 {
		selected, hadSelection = s.segments[len(s.segments)-1], true
	}
	idx, _ := s.cycle.Current()

	for len(s.segments) > 0 {
		if _, err := os.Stat(s.Path()); err == nil {
			break
		}
		selected, hadSelection = "", false
		s.segments = s.segments[:len(s.segments)-1]
	}

	if err := s.reload(); err != nil {
		return err
	}

	if s.mode == ModeDirectory {
		if !hadSelection || !s.Select(selected) {
			s.cycle.Set(idx)
		}
	}
	return nil
}

func (s *State) reload() error {
	path := s.Path()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("list %s: %w", path, err)
	}

	if !info.IsDir() {
		s.mode = ModeLeaf
		s.entries = nil
		s.cycle = utils.NewCycle(0)
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("list %s: %w", path, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() || filepath.Ext(name) == s.ext {
			names = append(names, name)
		}
	}

	s.mode = ModeDirectory
	s.entries = names
	s.cycle = utils.NewCycle(len(names))
	return nil
}
