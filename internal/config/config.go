// Package config loads pibary configuration from YAML, .env files and
// environment overrides.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pibary/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	History HistoryConfig `yaml:"history"`
	Server  ServerConfig  `yaml:"server"`
}

// EngineConfig selects the digit engine.
type EngineConfig struct {
	Kind       string `yaml:"kind"`        // "spigot" or "bellard"
	BatchWidth int    `yaml:"batch_width"` // digits per extraction block (bellard only)
	Start      int64  `yaml:"start"`       // first digit position for the digits command
}

// SearchConfig bounds substring searches.
type SearchConfig struct {
	MaxBytes int64 `yaml:"max_bytes"` // 0 means unbounded
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// HistoryConfig configures the search history store.
type HistoryConfig struct {
	Enabled    bool        `yaml:"enabled"`
	Path       string      `yaml:"path"`
	MaxEntries int         `yaml:"max_entries"`
	Retry      RetryConfig `yaml:"retry"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	MaxDigits   int           `yaml:"max_digits"`
	// MaxPosition caps the start and position parameters; both engines get
	// slower with distance into the expansion.
	MaxPosition int64         `yaml:"max_position"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// Load reads the configuration file at configPath on top of the defaults.
// An empty path yields the defaults. Environment overrides are applied last
// and the result is validated.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.ConfigError("configuration file not found").
					WithContext("path", configPath).
					Build()
			}
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
				WithContext("path", configPath).
				Build()
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse expands ${VAR} references in data and decodes it into cfg. Keys
// absent from data keep their current values.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	if mode := NormalizeRetryBackoff(string(cfg.History.Retry.Backoff)); mode != "" {
		cfg.History.Retry.Backoff = mode
	}
	return nil
}
