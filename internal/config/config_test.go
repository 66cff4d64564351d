package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/kb/internal/config"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func writeConfig(t *testing.T, path string, data map[string]any) {
	t.Helper()

	raw, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	home := setHome(t)
	path := config.GetConfigPath(home)

	writeConfig(t, path, map[string]any{
		"data_directories": []string{"~/notes", filepath.Join(home, "archive")},
	})

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []string{filepath.Join(home, "notes"), filepath.Join(home, "archive")}
	if !slices.Equal(cfg.DataDirectories, want) {
		t.Fatalf("unexpected data directories: %v", cfg.DataDirectories)
	}
	if cfg.Extension != "md" {
		t.Fatalf("expected default extension, got %q", cfg.Extension)
	}
	if cfg.TickInterval != 200*time.Millisecond {
		t.Fatalf("expected default tick interval, got %v", cfg.TickInterval)
	}
	if cfg.LogFile != filepath.Join(home, ".kb", "kb.log") {
		t.Fatalf("unexpected log file: %q", cfg.LogFile)
	}
	if cfg.Primary() != want[0] || cfg.Root() != want[1] {
		t.Fatalf("unexpected primary/root: %q %q", cfg.Primary(), cfg.Root())
	}
}

func TestLoadReadsValuesAndEnvironment(t *testing.T) {
	home := setHome(t)
	path := filepath.Join(home, "custom.yaml")

	writeConfig(t, path, map[string]any{
		"data_directories": []string{filepath.Join(home, "kb")},
		"extension":        ".txt",
		"tick_interval":    "1s",
	})
	t.Setenv("KB_TICK_INTERVAL", "500ms")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Extension != "txt" {
		t.Fatalf("expected extension without dot, got %q", cfg.Extension)
	}
	if cfg.TickInterval != 500*time.Millisecond {
		t.Fatalf("expected environment override, got %v", cfg.TickInterval)
	}
	if cfg.Path() != path {
		t.Fatalf("unexpected path: %q", cfg.Path())
	}
}

func TestLoadReadsTomlConf(t *testing.T) {
	home := setHome(t)
	path := filepath.Join(home, "kb.conf")

	content := "data_directories = [\"" + filepath.ToSlash(filepath.Join(home, "kb")) + "\"]\nextension = \"md\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.DataDirectories) != 1 {
		t.Fatalf("unexpected data directories: %v", cfg.DataDirectories)
	}
}

func TestLoadMissingFileIsInitError(t *testing.T) {
	home := setHome(t)

	_, err := config.Load(config.GetConfigPath(home))

	var initErr *config.ConfigInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError, got %v", err)
	}
}

func TestLoadRejectsMissingDataDirectories(t *testing.T) {
	home := setHome(t)
	path := config.GetConfigPath(home)
	writeConfig(t, path, map[string]any{"extension": "md"})

	_, err := config.Load(path)

	var initErr *config.ConfigInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError, got %v", err)
	}
}

func TestSaveRoundTrips(t *testing.T) {
	home := setHome(t)
	path := config.GetConfigPath(home)

	cfg := config.Default(home)
	cfg.DataDirectories = []string{filepath.Join(home, "kb")}
	cfg.TickInterval = time.Second

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if !slices.Equal(reloaded.DataDirectories, cfg.DataDirectories) {
		t.Fatalf("unexpected data directories: %v", reloaded.DataDirectories)
	}
	if reloaded.TickInterval != time.Second {
		t.Fatalf("unexpected tick interval: %v", reloaded.TickInterval)
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	home := setHome(t)

	if err := config.Default(home).Save(config.GetConfigPath(home)); err == nil {
		t.Fatalf("expected Save to reject a config without data directories")
	}
}

func TestResolvePathPrecedence(t *testing.T) {
	home := setHome(t)

	t.Setenv("KB_CONFIG", "")
	got, err := config.ResolvePath("")
	if err != nil || got != config.GetConfigPath(home) {
		t.Fatalf("expected default path, got %q (%v)", got, err)
	}

	t.Setenv("KB_CONFIG", "~/env.yaml")
	got, _ = config.ResolvePath("")
	if got != filepath.Join(home, "env.yaml") {
		t.Fatalf("expected env path, got %q", got)
	}

	got, _ = config.ResolvePath("/explicit.yaml")
	if got != "/explicit.yaml" {
		t.Fatalf("expected flag path, got %q", got)
	}
}

func TestEnsureDataDirectories(t *testing.T) {
	home := setHome(t)

	file := filepath.Join(home, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cfg := config.Default(home)
	cfg.DataDirectories = []string{filepath.Join(home, "a", "b")}
	if err := config.EnsureDataDirectories(cfg); err != nil {
		t.Fatalf("EnsureDataDirectories returned error: %v", err)
	}
	if info, err := os.Stat(cfg.DataDirectories[0]); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to be created")
	}

	cfg.DataDirectories = []string{file}
	var initErr *config.ConfigInitError
	if err := config.EnsureDataDirectories(cfg); !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError for a file, got %v", err)
	}
}

func TestCheckRoot(t *testing.T) {
	home := setHome(t)

	cfg := config.Default(home)
	cfg.DataDirectories = []string{home}
	if err := config.CheckRoot(cfg); err != nil {
		t.Fatalf("CheckRoot returned error for an existing root: %v", err)
	}

	missing := filepath.Join(home, "does-not-exist")
	cfg.DataDirectories = []string{home, missing}
	var initErr *config.ConfigInitError
	if err := config.CheckRoot(cfg); !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError for a missing root, got %v", err)
	}
	if _, err := os.Stat(missing); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("CheckRoot must not create the root, stat err = %v", err)
	}

	file := filepath.Join(home, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	cfg.DataDirectories = []string{file}
	if err := config.CheckRoot(cfg); !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError for a file root, got %v", err)
	}
}
