package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines tool configuration.
type Config struct {
	DB       DBConfig       `yaml:"db"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Log      LogConfig      `yaml:"log"`
}

type DBConfig struct {
	// Driver selects the backend: "sqlite" (local file) or "postgres"
	// (hosted database, connected via URL).
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

type ScheduleConfig struct {
	DefaultDurationDays int `yaml:"default_duration_days"`
	AutosaveQuietMS     int `yaml:"autosave_quiet_ms"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Env vars win over the file; the file wins over defaults.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Driver: "sqlite",
		},
		Schedule: ScheduleConfig{
			DefaultDurationDays: 5,
			AutosaveQuietMS:     2000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("LATH_CONFIG"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if driver := os.Getenv("LATH_DB_DRIVER"); driver != "" {
		cfg.DB.Driver = driver
	}
	if dbPath := os.Getenv("LATH_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if url := os.Getenv("LATH_DB_URL"); url != "" {
		cfg.DB.URL = url
	}
	if days := os.Getenv("LATH_DEFAULT_DURATION_DAYS"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LATH_DEFAULT_DURATION_DAYS: %w", err)
		}
		cfg.Schedule.DefaultDurationDays = n
	}
	if quiet := os.Getenv("LATH_AUTOSAVE_QUIET_MS"); quiet != "" {
		ms, err := strconv.Atoi(quiet)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LATH_AUTOSAVE_QUIET_MS: %w", err)
		}
		cfg.Schedule.AutosaveQuietMS = ms
	}
	if level := os.Getenv("LATH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "postgres" {
		return Config{}, fmt.Errorf("unsupported db driver %q (expected sqlite or postgres)", cfg.DB.Driver)
	}
	if cfg.Schedule.DefaultDurationDays < 1 {
		cfg.Schedule.DefaultDurationDays = 1
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
