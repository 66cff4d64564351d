package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/kb/internal/constants"
	"github.com/Paintersrp/kb/internal/pathutil"
)

type Config struct {
	DataDirectories []string      `yaml:"data_directories" mapstructure:"data_directories"`
	Extension       string        `yaml:"extension"        mapstructure:"extension"`
	TickInterval    time.Duration `yaml:"tick_interval"    mapstructure:"tick_interval"`
	LogFile         string        `yaml:"log_file"         mapstructure:"log_file"`

	path string
}

// Default returns the configuration used for keys missing from the file.
func Default(home string) *Config {
	return &Config{
		Extension:    constants.DefaultExtension,
		TickInterval: constants.DefaultTickInterval,
		LogFile:      filepath.Join(home, constants.ConfigDir, constants.LogFile),
	}
}

// Load reads the configuration at path. Environment variables prefixed with
// KB_ override file values. A missing file is reported as a ConfigInitError
// so callers can point the user at `kb init`.
func Load(path string) (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaults := Default(home)

	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "conf" {
		v.SetConfigType("toml")
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("extension", defaults.Extension)
	v.SetDefault("tick_interval", defaults.TickInterval)
	v.SetDefault("log_file", defaults.LogFile)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigInitError{
				msg: fmt.Sprintf("no config file at %s, run `kb init` to create one", path),
			}
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigInitError{msg: fmt.Sprintf("invalid config %s: %v", path, err)}
	}

	return cfg, nil
}

func (cfg *Config) normalize() error {
	dirs := make([]string, 0, len(cfg.DataDirectories))
	for _, d := range cfg.DataDirectories {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		expanded, err := homedir.Expand(d)
		if err != nil {
			return fmt.Errorf("expand %s: %w", d, err)
		}
		dirs = append(dirs, pathutil.NormalizePath(expanded))
	}
	cfg.DataDirectories = dirs

	cfg.Extension = strings.TrimPrefix(strings.TrimSpace(cfg.Extension), ".")

	if cfg.LogFile != "" {
		expanded, err := homedir.Expand(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("expand %s: %w", cfg.LogFile, err)
		}
		cfg.LogFile = expanded
	}
	return nil
}

func (cfg *Config) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.DataDirectories,
			validation.Required.Error("at least one data directory is required"),
		),
		validation.Field(&cfg.Extension,
			validation.Required,
			validation.By(noSeparators),
		),
		validation.Field(&cfg.TickInterval,
			validation.Min(10*time.Millisecond),
		),
	)
}

func noSeparators(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return errors.New("must not contain path separators")
	}
	return nil
}

// Primary is the directory new entries are written to.
func (cfg *Config) Primary() string {
	if len(cfg.DataDirectories) == 0 {
		return ""
	}
	return cfg.DataDirectories[0]
}

// Root is the directory the browser opens into.
func (cfg *Config) Root() string {
	if len(cfg.DataDirectories) == 0 {
		return ""
	}
	return cfg.DataDirectories[len(cfg.DataDirectories)-1]
}

func (cfg *Config) Path() string {
	return cfg.path
}

// Save writes the configuration as yaml to path, or back to the file it was
// loaded from when path is empty.
func (cfg *Config) Save(path string) error {
	if path == "" {
		path = cfg.path
	}
	if path == "" {
		return errors.New("no config path to save to")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	cfg.path = path
	return nil
}
