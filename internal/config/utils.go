package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/Paintersrp/kb/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// ResolvePath picks the config file to use: an explicit flag value first,
// then $KB_CONFIG, then the default under the home directory.
func ResolvePath(flagValue string) (string, error) {
	candidate := flagValue
	if candidate == "" {
		candidate = os.Getenv(constants.EnvConfig)
	}
	if candidate != "" {
		return homedir.Expand(candidate)
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return GetConfigPath(home), nil
}

// CheckRoot reports a ConfigInitError when the browser root is missing or is
// not a directory.
func CheckRoot(cfg *Config) error {
	root := cfg.Root()
	info, err := os.Stat(root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &ConfigInitError{msg: fmt.Sprintf("root directory %s does not exist", root)}
	case err != nil:
		return fmt.Errorf("failed to check root directory %s: %w", root, err)
	case !info.IsDir():
		return &ConfigInitError{msg: fmt.Sprintf("root directory %s is not a directory", root)}
	}
	return nil
}

// EnsureDataDirectories creates every configured data directory that does
// not exist yet. The browser root must end up being a directory.
func EnsureDataDirectories(cfg *Config) error {
	for _, dir := range cfg.DataDirectories {
		info, err := os.Stat(dir)
		switch {
		case errors.Is(err, os.ErrNotExist):
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to check data directory %s: %w", dir, err)
		case !info.IsDir():
			return &ConfigInitError{
				msg: fmt.Sprintf("data directory %s is not a directory", dir),
			}
		}
	}
	return nil
}
