package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultCategory = "work"
	DefaultBarWidth = 40
	FileName        = "timetrack.yml"
	TOMLFileName    = "timetrack.toml"
	DBFileName      = "timetrack.db"
)

type Config struct {
	DataDir         string    `yaml:"-" toml:"-"`
	DBPath          string    `yaml:"db_path" toml:"db_path"`
	Driver          string    `yaml:"driver" toml:"driver"`
	DSN             string    `yaml:"dsn" toml:"dsn"`
	DefaultCategory string    `yaml:"default_category" toml:"default_category"`
	BarWidth        int       `yaml:"bar_width" toml:"bar_width"`
	Timezone        string    `yaml:"timezone" toml:"timezone"`
	Log             LogConfig `yaml:"log" toml:"log"`
}

// LogConfig is the logging section of the config file.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	// File overrides the default <data-dir>/.timetrack/logs/timetrack-<date>.log.
	File string `yaml:"file" toml:"file"`
	// Stderr is "auto" (default), "always" or "never".
	Stderr string `yaml:"stderr" toml:"stderr"`
}

// New returns the defaults for a data directory.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, DBFileName),
		Driver:          DriverSQLite,
		DefaultCategory: DefaultCategory,
		BarWidth:        DefaultBarWidth,
		Log:             LogConfig{Level: "info", Stderr: "auto"},
	}, nil
}

// Load layers defaults, the config file, <data-dir>/.env and TIMETRACK_*
// environment variables, in that order. An empty configPath means
// <data-dir>/timetrack.yml, or timetrack.toml, when either exists.
func Load(dataDir, configPath string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(dataDir, FileName)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = filepath.Join(dataDir, TOMLFileName)
		}
	}
	if err := cfg.mergeFile(configPath, explicit); err != nil {
		return Config{}, err
	}

	envFile := filepath.Join(dataDir, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unmarshal = toml.Unmarshal
	}
	if err := unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(c.DataDir, c.DBPath)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TIMETRACK_DRIVER"); v != "" {
		c.Driver = v
	}
	if v := os.Getenv("TIMETRACK_DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("TIMETRACK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TIMETRACK_CATEGORY"); v != "" {
		c.DefaultCategory = v
	}
	if v := os.Getenv("TIMETRACK_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("TIMETRACK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TIMETRACK_BAR_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TIMETRACK_BAR_WIDTH: %w", err)
		}
		c.BarWidth = width
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("db path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DSN) == "" {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported driver %q (want %s or %s)", c.Driver, DriverSQLite, DriverPostgres)
	}
	if strings.TrimSpace(c.DefaultCategory) == "" {
		return fmt.Errorf("default category must not be empty")
	}
	if c.BarWidth <= 0 {
		return fmt.Errorf("bar width must be positive, got %d", c.BarWidth)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the display and day-boundary location. It defaults to the
// process local zone.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
