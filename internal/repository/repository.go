// Package repository loads knowledge entries from the configured data
// directories and writes edited entries back to disk.
package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Paintersrp/kb/internal/knowledge"
	"github.com/Paintersrp/kb/internal/pathutil"
)

var (
	ErrConflict  = errors.New("an entry with that title already exists")
	ErrProtected = errors.New("refusing to remove a data directory")
	ErrNoDirs    = errors.New("no data directories configured")
)

// LoadError records a file that was skipped during Load.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e LoadError) Unwrap() error {
	return e.Err
}

type Repository struct {
	dirs []string
	ext  string

	mu       sync.RWMutex
	entries  []*knowledge.Entry
	index    TagIndex
	problems []LoadError
	loadedAt time.Time
}

// Stats summarises the last successful Load.
type Stats struct {
	Entries  int
	Tags     int
	Skipped  int
	LoadedAt time.Time
}

// New returns a repository over dirs. The first directory receives new
// entries; the last one is where browsing starts.
func New(dirs []string, ext string) *Repository {
	cleaned := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d = pathutil.NormalizePath(d); d != "" {
			cleaned = append(cleaned, d)
		}
	}

	return &Repository{
		dirs:  cleaned,
		ext:   strings.TrimPrefix(ext, "."),
		index: TagIndex{},
	}
}

// Load walks every data directory concurrently and replaces the entry
// snapshot and tag index. Unreadable or untitled files are skipped and
// recorded in Problems.
func (r *Repository) Load(ctx context.Context) error {
	if len(r.dirs) == 0 {
		return ErrNoDirs
	}

	results := make([][]*knowledge.Entry, len(r.dirs))
	skipped := make([][]LoadError, len(r.dirs))

	g, ctx := errgroup.WithContext(ctx)
	for i, dir := range r.dirs {
		i, dir := i, dir
		g.Go(func() error {
			entries, problems, err := r.walk(ctx, dir)
			if err != nil {
				return err
			}
			results[i] = entries
			skipped[i] = problems
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var (
		entries  []*knowledge.Entry
		problems []LoadError
	)
	for i := range r.dirs {
		entries = append(entries, results[i]...)
		problems = append(problems, skipped[i]...)
	}

	index := BuildTagIndex(entries)

	r.mu.Lock()
	r.entries = entries
	r.index = index
	r.problems = problems
	r.loadedAt = time.Now()
	r.mu.Unlock()

	slog.Info("repository loaded",
		"directories", len(r.dirs),
		"entries", len(entries),
		"tags", len(index),
		"skipped", len(problems),
	)
	return nil
}

func (r *Repository) walk(
	ctx context.Context,
	dir string,
) ([]*knowledge.Entry, []LoadError, error) {
	var (
		entries  []*knowledge.Entry
		problems []LoadError
	)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			problems = append(problems, r.skip(path, err))
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !r.matches(name) {
			return nil
		}

		entry, err := knowledge.ReadFile(path)
		if err != nil {
			problems = append(problems, r.skip(path, err))
			return nil
		}
		if entry.Title == "" {
			problems = append(problems, r.skip(path, knowledge.ErrNoTitle))
			return nil
		}

		entries = append(entries, &entry)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", dir, err)
	}

	return entries, problems, nil
}

func (r *Repository) skip(path string, err error) LoadError {
	slog.Warn("skipping entry", "path", path, "err", err)
	return LoadError{Path: path, Err: err}
}

func (r *Repository) matches(name string) bool {
	return filepath.Ext(name) == "."+r.ext
}

// Write validates entry and writes it as <title>.<ext> inside dir, creating
// dir when needed. An existing file of the same name is overwritten.
func (r *Repository) Write(entry knowledge.Entry, dir string) (string, error) {
	if err := entry.Validate(); err != nil {
		return "", fmt.Errorf("invalid entry: %w", err)
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, entry.Filename(r.ext))
	if err := os.WriteFile(path, []byte(knowledge.Serialize(entry)), 0o644); err != nil {
		slog.Error("failed to write entry", "path", path, "err", err)
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

// Create writes a new entry into the primary directory. It never overwrites.
func (r *Repository) Create(entry knowledge.Entry) (string, error) {
	primary := r.Primary()
	if primary == "" {
		return "", ErrNoDirs
	}

	if err := entry.Validate(); err != nil {
		return "", fmt.Errorf("invalid entry: %w", err)
	}

	target := filepath.Join(primary, entry.Filename(r.ext))
	if exists(target) {
		return "", fmt.Errorf("%w: %s", ErrConflict, target)
	}

	return r.Write(entry, primary)
}

// Save persists an edited entry. With an empty source it behaves like Create.
// Otherwise the entry is written next to source; when the title changed the
// new file must not exist yet and source is removed once the write succeeded.
func (r *Repository) Save(entry knowledge.Entry, source string) (string, error) {
	if source == "" {
		return r.Create(entry)
	}

	if err := entry.Validate(); err != nil {
		return "", fmt.Errorf("invalid entry: %w", err)
	}

	dir := filepath.Dir(source)
	target := filepath.Join(dir, entry.Filename(r.ext))
	renamed := filepath.Clean(target) != filepath.Clean(source)

	if renamed && exists(target) {
		return "", fmt.Errorf("%w: %s", ErrConflict, target)
	}

	path, err := r.Write(entry, dir)
	if err != nil {
		return "", err
	}

	if renamed {
		if err := os.Remove(source); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return path, fmt.Errorf("remove %s after rename: %w", source, err)
		}
	}

	return path, nil
}

// Remove deletes a single file.
func (r *Repository) Remove(path string) error {
	if r.protected(path) {
		return fmt.Errorf("%w: %s", ErrProtected, path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	slog.Info("removed entry", "path", path)
	return nil
}

// RemoveAll deletes a directory and everything beneath it.
func (r *Repository) RemoveAll(path string) error {
	if r.protected(path) || !r.within(path) {
		return fmt.Errorf("%w: %s", ErrProtected, path)
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	slog.Info("removed directory", "path", path)
	return nil
}

func (r *Repository) protected(path string) bool {
	cleaned := pathutil.NormalizePath(path)
	for _, d := range r.dirs {
		if cleaned == d {
			return true
		}
	}
	return false
}

func (r *Repository) within(path string) bool {
	for _, d := range r.dirs {
		if pathutil.Within(d, path) {
			return true
		}
	}
	return false
}

// Entries returns the entries of the last successful Load, sorted by title.
func (r *Repository) Entries() []*knowledge.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*knowledge.Entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}

func (r *Repository) Tags() TagIndex {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

func (r *Repository) Problems() []LoadError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]LoadError(nil), r.problems...)
}

func (r *Repository) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Stats{
		Entries:  len(r.entries),
		Tags:     len(r.index),
		Skipped:  len(r.problems),
		LoadedAt: r.loadedAt,
	}
}

// Find returns the first loaded entry with the given title.
func (r *Repository) Find(title string) (*knowledge.Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.Title == title {
			return e, true
		}
	}
	return nil, false
}

// Primary is the directory new entries are written to.
func (r *Repository) Primary() string {
	if len(r.dirs) == 0 {
		return ""
	}
	return r.dirs[0]
}

// Root is the directory the browser opens into.
func (r *Repository) Root() string {
	if len(r.dirs) == 0 {
		return ""
	}
	return r.dirs[len(r.dirs)-1]
}

func (r *Repository) Extension() string {
	return r.ext
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
