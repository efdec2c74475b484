package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/pibary/internal/errors"
)

// Environment variables that override file configuration.
const (
	EnvEngine   = "PIBARY_ENGINE"
	EnvLogLevel = "PIBARY_LOG_LEVEL"
	EnvMaxBytes = "PIBARY_MAX_BYTES"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local when present. Existing process
// environment variables are not overwritten.
func loadEnvFiles() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v, ok := lookupEnv(EnvEngine); ok {
		cfg.Engine.Kind = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.Logging.Level = NormalizeLogLevel(v)
	}
	if v, ok := lookupEnv(EnvMaxBytes); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid "+EnvMaxBytes).
				WithContext("value", v).
				Build()
		}
		cfg.Search.MaxBytes = n
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
