package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Paintersrp/kb/internal/knowledge"
)

func TestLoadBuildsTagIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteEntry(t, filepath.Join(dir, "A.md"), knowledge.Entry{Title: "A", Tags: []string{"x"}})
	mustWriteEntry(t, filepath.Join(dir, "nested", "B.md"), knowledge.Entry{Title: "B", Tags: []string{"x", "y"}})

	repo := New([]string{dir}, "md")
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	index := repo.Tags()
	if got := titles(index.Entries("x")); !slices.Equal(got, []string{"A", "B"}) {
		t.Fatalf("expected x to hold A and B, got %v", got)
	}
	if got := titles(index.Entries("y")); !slices.Equal(got, []string{"B"}) {
		t.Fatalf("expected y to hold only B, got %v", got)
	}
	if !slices.Equal(index.Tags(), []string{"x", "y"}) {
		t.Fatalf("unexpected tags: %v", index.Tags())
	}
}

func TestBuildTagIndexCompleteness(t *testing.T) {
	t.Parallel()

	entries := []*knowledge.Entry{
		{Title: "one", Tags: []string{"a", "b"}},
		{Title: "two"},
		{Title: "three", Tags: []string{"b", "c"}},
	}

	index := BuildTagIndex(entries)

	for _, e := range entries {
		for _, tag := range e.Tags {
			if !slices.Contains(index.Entries(tag), e) {
				t.Fatalf("entry %q missing from tag %q", e.Title, tag)
			}
		}
	}
	for tag, bucket := range index {
		if slices.Contains(bucket, entries[1]) {
			t.Fatalf("untagged entry appeared under %q", tag)
		}
	}
	if index.Count("b") != 2 {
		t.Fatalf("expected two entries under b, got %d", index.Count("b"))
	}
}

func TestLoadSkipsBadFilesAndHiddenPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteEntry(t, filepath.Join(dir, "good.md"), knowledge.Entry{Title: "good"})
	mustWriteRaw(t, filepath.Join(dir, "untitled.md"), "no header here")
	mustWriteRaw(t, filepath.Join(dir, "other.txt"), "# Title: other")
	mustWriteEntry(t, filepath.Join(dir, ".hidden", "secret.md"), knowledge.Entry{Title: "secret"})

	repo := New([]string{dir}, ".md")
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := titles(repo.Entries()); !slices.Equal(got, []string{"good"}) {
		t.Fatalf("expected only the good entry, got %v", got)
	}

	problems := repo.Problems()
	if len(problems) != 1 || filepath.Base(problems[0].Path) != "untitled.md" {
		t.Fatalf("expected untitled.md to be reported, got %v", problems)
	}
	if !errors.Is(problems[0], knowledge.ErrNoTitle) {
		t.Fatalf("expected ErrNoTitle, got %v", problems[0].Err)
	}
}

func TestLoadFailsForMissingDirectory(t *testing.T) {
	t.Parallel()

	repo := New([]string{filepath.Join(t.TempDir(), "missing")}, "md")
	if err := repo.Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing data directory")
	}

	if err := New(nil, "md").Load(context.Background()); !errors.Is(err, ErrNoDirs) {
		t.Fatalf("expected ErrNoDirs, got %v", err)
	}
}

func TestLoadReadsEveryDirectory(t *testing.T) {
	t.Parallel()

	first, second := t.TempDir(), t.TempDir()
	mustWriteEntry(t, filepath.Join(first, "one.md"), knowledge.Entry{Title: "one"})
	mustWriteEntry(t, filepath.Join(second, "two.md"), knowledge.Entry{Title: "two"})

	repo := New([]string{first, second}, "md")
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := titles(repo.Entries()); !slices.Equal(got, []string{"one", "two"}) {
		t.Fatalf("unexpected entries: %v", got)
	}
	if repo.Primary() != first || repo.Root() != second {
		t.Fatalf("unexpected primary/root: %q %q", repo.Primary(), repo.Root())
	}
	if _, ok := repo.Find("two"); !ok {
		t.Fatalf("expected to find entry two")
	}
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := New([]string{dir}, "md")

	path, err := repo.Create(knowledge.Entry{Title: "note", Text: "first"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if path != filepath.Join(dir, "note.md") {
		t.Fatalf("unexpected path: %q", path)
	}

	if _, err := repo.Create(knowledge.Entry{Title: "note", Text: "second"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, err := knowledge.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if got.Text != "first" {
		t.Fatalf("expected original content to survive, got %q", got.Text)
	}
}

func TestCreateRejectsInvalidEntry(t *testing.T) {
	t.Parallel()

	repo := New([]string{t.TempDir()}, "md")
	if _, err := repo.Create(knowledge.Entry{Text: "body"}); !errors.Is(err, knowledge.ErrNoTitle) {
		t.Fatalf("expected ErrNoTitle, got %v", err)
	}
}

func TestWriteCreatesDirectoryAndOverwrites(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "new", "dir")
	repo := New([]string{dir}, "md")

	if _, err := repo.Write(knowledge.Entry{Title: "a", Text: "one"}, dir); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	path, err := repo.Write(knowledge.Entry{Title: "a", Text: "two", Tags: []string{"t"}}, dir)
	if err != nil {
		t.Fatalf("second Write returned error: %v", err)
	}

	got, err := knowledge.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if got.Text != "two" || !slices.Equal(got.Tags, []string{"t"}) {
		t.Fatalf("expected overwritten entry, got %+v", got)
	}
}

func TestSaveRenameRemovesSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "sub", "old.md")
	mustWriteEntry(t, source, knowledge.Entry{Title: "old"})

	repo := New([]string{dir}, "md")
	path, err := repo.Save(knowledge.Entry{Title: "new", Text: "body"}, source)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if path != filepath.Join(dir, "sub", "new.md") {
		t.Fatalf("expected entry written next to source, got %q", path)
	}
	if _, err := os.Stat(source); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected source to be removed, stat err = %v", err)
	}
}

func TestSaveSameTitleOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "same.md")
	mustWriteEntry(t, source, knowledge.Entry{Title: "same", Text: "before"})

	repo := New([]string{dir}, "md")
	if _, err := repo.Save(knowledge.Entry{Title: "same", Text: "after"}, source); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := knowledge.ReadFile(source)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if got.Text != "after" {
		t.Fatalf("expected updated text, got %q", got.Text)
	}
}

func TestSaveRenameOntoExistingConflicts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "a.md")
	mustWriteEntry(t, source, knowledge.Entry{Title: "a"})
	mustWriteEntry(t, filepath.Join(dir, "b.md"), knowledge.Entry{Title: "b", Text: "keep"})

	repo := New([]string{dir}, "md")
	if _, err := repo.Save(knowledge.Entry{Title: "b"}, source); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("expected source to survive a failed rename: %v", err)
	}
}

func TestRemoveRefusesDataDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	mustWriteEntry(t, filepath.Join(sub, "x.md"), knowledge.Entry{Title: "x"})

	repo := New([]string{dir}, "md")

	if err := repo.RemoveAll(dir); !errors.Is(err, ErrProtected) {
		t.Fatalf("expected ErrProtected for data directory, got %v", err)
	}
	if err := repo.RemoveAll(filepath.Join(t.TempDir(), "elsewhere")); !errors.Is(err, ErrProtected) {
		t.Fatalf("expected ErrProtected outside data directories, got %v", err)
	}
	if err := repo.Remove(filepath.Join(sub, "x.md")); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := repo.RemoveAll(sub); err != nil {
		t.Fatalf("RemoveAll returned error: %v", err)
	}
	if _, err := os.Stat(sub); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected sub directory to be gone, stat err = %v", err)
	}
}

func titles(entries []*knowledge.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	slices.Sort(out)
	return out
}

func mustWriteEntry(t *testing.T, path string, e knowledge.Entry) {
	t.Helper()
	mustWriteRaw(t, path, knowledge.Serialize(e))
}

func mustWriteRaw(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
