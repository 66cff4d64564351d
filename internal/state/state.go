package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Paintersrp/kb/internal/config"
	"github.com/Paintersrp/kb/internal/repository"
)

type State struct {
	Config     *config.Config
	Repository *repository.Repository
	Watcher    *Watcher
	Logger     *slog.Logger

	logFile *os.File
}

// NewState resolves and loads the configuration, installs the file logger
// and performs the initial repository load.
func NewState(ctx context.Context, configPath string) (*State, error) {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return FromConfig(ctx, cfg)
}

// FromConfig builds the state around an already loaded configuration.
func FromConfig(ctx context.Context, cfg *config.Config) (*State, error) {
	if err := config.CheckRoot(cfg); err != nil {
		return nil, err
	}
	if err := config.EnsureDataDirectories(cfg); err != nil {
		return nil, err
	}

	s := &State{Config: cfg}
	if err := s.openLog(); err != nil {
		return nil, err
	}

	s.Repository = repository.New(cfg.DataDirectories, cfg.Extension)
	if err := s.Repository.Load(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	return s, nil
}

func (s *State) openLog() error {
	if s.Config.LogFile == "" {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		slog.SetDefault(s.Logger)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.Config.LogFile), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(s.Config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	s.logFile = f
	s.Logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(s.Logger)
	return nil
}

// Watch starts watching every data directory for changes. It is only needed
// by the interactive browser.
func (s *State) Watch() (*Watcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}

	w, err := NewWatcher(s.Config.DataDirectories, s.Config.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w.OnChange(func(path string) {
		slog.Debug("data directory changed", "path", path)
	})
	w.OnClose(func() {
		slog.Info("stopped watching data directories")
	})

	s.Watcher = w
	return w, nil
}

// Close releases the watcher and the log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logFile = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
