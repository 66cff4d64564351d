package add

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Paintersrp/kb/internal/config"
	"github.com/Paintersrp/kb/internal/knowledge"
	"github.com/Paintersrp/kb/internal/repository"
	"github.com/Paintersrp/kb/internal/state"
	"github.com/Paintersrp/kb/pkg/shared/arg"
)

func newLoader(t *testing.T, dir string) func(context.Context) (*state.State, error) {
	t.Helper()

	cfg := &config.Config{
		DataDirectories: []string{dir},
		Extension:       "md",
		TickInterval:    time.Second,
	}
	return func(ctx context.Context) (*state.State, error) {
		return state.FromConfig(ctx, cfg)
	}
}

func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cmd := NewCmdAdd(newLoader(t, dir))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAddWritesEntry(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "Go channels", "go, concurrency", "Unbuffered", "sends", "block.", "-d", "notes on channels")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	path := filepath.Join(dir, "Go channels.md")
	if strings.TrimSpace(out) != path {
		t.Fatalf("printed %q, want %q", out, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	entry := knowledge.Parse(string(raw))
	if entry.Title != "Go channels" || entry.Description != "notes on channels" {
		t.Fatalf("unexpected headers: %+v", entry)
	}
	if strings.Join(entry.Tags, ",") != "go,concurrency" {
		t.Fatalf("tags = %v", entry.Tags)
	}
	if entry.Text != "Unbuffered sends block." {
		t.Fatalf("body = %q", entry.Text)
	}
}

func TestAddRefusesDuplicateTitle(t *testing.T) {
	dir := t.TempDir()

	if _, err := execute(t, dir, "Twice"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := execute(t, dir, "Twice")
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("second add error = %v, want ErrConflict", err)
	}
}

func TestAddRequiresTitle(t *testing.T) {
	if _, err := execute(t, t.TempDir()); !errors.Is(err, arg.ErrNoTitle) {
		t.Fatalf("add without title = %v, want ErrNoTitle", err)
	}
}

func TestAddRejectsPathTitle(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, dir, "a/b"); err == nil {
		t.Fatal("expected an error for a title containing a separator")
	}

	files, _ := os.ReadDir(dir)
	if len(files) != 0 {
		t.Fatalf("nothing should be written, found %d files", len(files))
	}
}

func TestAddRejectsMultiLineDescription(t *testing.T) {
	dir := t.TempDir()

	if _, err := execute(t, dir, "Go", "-d", "one\ntwo"); err == nil {
		t.Fatalf("expected a multi-line description to be rejected")
	}
	if _, err := os.Stat(filepath.Join(dir, "Go.md")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no file to be written, stat err = %v", err)
	}
}
