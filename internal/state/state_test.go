package state

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/kb/internal/config"
	"github.com/Paintersrp/kb/internal/knowledge"
	"github.com/Paintersrp/kb/internal/repository"
)

func TestStatusLineIncludesLoadTime(t *testing.T) {
	t.Parallel()

	loaded := time.Date(2024, time.March, 5, 17, 42, 0, 0, time.Local)
	got := StatusLine(repository.Stats{Entries: 3, Tags: 2, Skipped: 1, LoadedAt: loaded})
	want := "3 entries · 2 tags · 1 skipped · loaded 17:42"
	if got != want {
		t.Fatalf("StatusLine mismatch: got %q, want %q", got, want)
	}
}

func TestStatusLineOmitsEmptyParts(t *testing.T) {
	t.Parallel()

	got := StatusLine(repository.Stats{})
	if got != "0 entries · 0 tags" {
		t.Fatalf("unexpected status line: %q", got)
	}
}

func TestFromConfigLoadsRepositoryAndLog(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(t.TempDir(), "logs", "kb.log")

	entry := knowledge.Entry{Title: "note", Tags: []string{"x"}}
	if err := os.WriteFile(filepath.Join(dir, "note.md"), []byte(knowledge.Serialize(entry)), 0o644); err != nil {
		t.Fatalf("failed to write entry: %v", err)
	}

	cfg := &config.Config{
		DataDirectories: []string{filepath.Join(dir, "created"), dir},
		Extension:       "md",
		TickInterval:    time.Second,
		LogFile:         logFile,
	}

	s, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if len(s.Repository.Entries()) != 1 {
		t.Fatalf("expected one entry, got %d", len(s.Repository.Entries()))
	}
	if _, err := os.Stat(filepath.Join(dir, "created")); err != nil {
		t.Fatalf("expected missing data directory to be created: %v", err)
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestFromConfigRejectsMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")
	cfg := &config.Config{
		DataDirectories: []string{root},
		Extension:       "md",
		TickInterval:    time.Second,
	}

	_, err := FromConfig(context.Background(), cfg)
	var initErr *config.ConfigInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError, got %v", err)
	}
	if _, err := os.Stat(root); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("root must not be created, stat err = %v", err)
	}
}

func TestFromConfigWithoutLogFileSilencesDefaultLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var stray bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&stray, nil)))

	cfg := &config.Config{
		DataDirectories: []string{t.TempDir()},
		Extension:       "md",
		TickInterval:    time.Second,
	}
	s, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	slog.Info("after startup")
	if err := s.Repository.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if stray.Len() != 0 {
		t.Fatalf("expected nothing on the previous logger, got %q", stray.String())
	}
	if slog.Default() != s.Logger {
		t.Fatalf("expected the discard logger to be the default")
	}
}

func TestWatcherRelevance(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher([]string{root}, "md")
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	cases := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{filepath.Join(root, "a.md"), fsnotify.Write, true},
		{filepath.Join(root, "a.MD"), fsnotify.Create, true},
		{filepath.Join(root, "a.txt"), fsnotify.Write, false},
		{filepath.Join(root, ".a.md.swp"), fsnotify.Write, false},
		{filepath.Join(root, "dir"), fsnotify.Remove, true},
		{filepath.Join(root, "dir"), fsnotify.Chmod, false},
		{filepath.Join(filepath.Dir(root), "outside.md"), fsnotify.Write, false},
	}

	for _, tc := range cases {
		got := w.isRelevant(fsnotify.Event{Name: tc.name, Op: tc.op})
		if got != tc.want {
			t.Fatalf("isRelevant(%s, %v) = %v, want %v", tc.name, tc.op, got, tc.want)
		}
	}
}

func TestWatcherReportsNewEntry(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher([]string{root}, "md")
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	msgs := make(chan any, 1)
	go func() { msgs <- w.Start()() }()

	path := filepath.Join(root, "new.md")
	if err := os.WriteFile(path, []byte("# Title: new"), 0o644); err != nil {
		t.Fatalf("failed to write entry: %v", err)
	}

	select {
	case msg := <-msgs:
		changed, ok := msg.(EntryChangedMsg)
		if !ok || !strings.HasSuffix(changed.Path, "new.md") {
			t.Fatalf("unexpected message: %#v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}

func TestWatcherCloseStopsStart(t *testing.T) {
	w, err := NewWatcher([]string{t.TempDir()}, "md")
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}

	closed := 0
	w.OnClose(func() { closed++ })

	done := make(chan any, 1)
	go func() { done <- w.Start()() }()

	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	_ = w.Close()

	select {
	case msg := <-done:
		if msg != nil {
			t.Fatalf("expected nil message after close, got %#v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Start did not return after Close")
	}
	if closed != 1 {
		t.Fatalf("expected OnClose to run once, ran %d times", closed)
	}
}
