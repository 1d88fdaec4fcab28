// Package config loads aromabench settings from a YAML file, environment
// variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/aromabench/internal/logging"
	"github.com/abhisek/aromabench/internal/store"
)

// Environment variables that override the config file.
const (
	EnvDB            = "AROMABENCH_DB"
	EnvLogLevel      = "AROMABENCH_LOG_LEVEL"
	EnvStorageDriver = "AROMABENCH_STORAGE"
	EnvKeepSnapshots = "AROMABENCH_KEEP_SNAPSHOTS"
)

var configValidate = validator.New()

// Config is the full set of user settings.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
	Simulator SimulatorConfig `yaml:"simulator"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite badger"`
	// Path is the sqlite file or badger directory. Empty means the
	// platform default.
	Path string `yaml:"path"`
	// KeepSnapshots bounds the sqlite snapshot history. 0 keeps all.
	KeepSnapshots int `yaml:"keep_snapshots" validate:"gte=0"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	// File is the log file. Empty means the platform default; "off"
	// disables logging.
	File string `yaml:"file"`
}

type SimulatorConfig struct {
	// PreviewLimit is how many ranked fragrances the live preview shows.
	PreviewLimit int `yaml:"preview_limit" validate:"gte=1,lte=50"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Driver:        store.DriverSQLite,
			KeepSnapshots: 50,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Simulator: SimulatorConfig{
			PreviewLimit: 8,
		},
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/aromabench/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "aromabench", "config.yaml"), nil
}

// Load reads path (DefaultPath when empty), applies environment overrides
// and validates the result. A missing file yields the defaults; an
// explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvStorageDriver); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.Logging.Level = level.String()
	}
	if v := os.Getenv(EnvKeepSnapshots); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvKeepSnapshots, err)
		}
		c.Storage.KeepSnapshots = n
	}
	return nil
}

// Save writes c to path as YAML, creating the directory.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// StorageOptions resolves the storage path and returns options for
// store.OpenBackend.
func (c Config) StorageOptions(logger *logging.Logger) (store.Options, error) {
	path := c.Storage.Path
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return store.Options{}, err
		}
		path = p
		if c.Storage.Driver == store.DriverBadger {
			path = filepath.Join(filepath.Dir(p), "badger")
		}
	} else if err := store.EnsureDir(path); err != nil {
		return store.Options{}, fmt.Errorf("create storage dir: %w", err)
	}
	return store.Options{Driver: c.Storage.Driver, Path: path, Logger: logger}, nil
}

// LoggingOptions resolves the log file and returns options for
// logging.New.
func (c Config) LoggingOptions() (logging.Options, error) {
	file := c.Logging.File
	switch file {
	case "off":
		file = ""
	case "":
		f, err := logging.DefaultFile()
		if err != nil {
			return logging.Options{}, err
		}
		file = f
	}
	return logging.Options{Level: c.Logging.Level, File: file}, nil
}
