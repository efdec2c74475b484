package config

import (
	"fmt"

	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/pi"
)

// Validate checks the configuration for values the engines and services cannot use.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateEngine,
		c.validateSearch,
		c.validateLogging,
		c.validateHistory,
		c.validateServer,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field string, value any, message string) error {
	return errors.ConfigError(message).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}

func (c *Config) validateEngine() error {
	if _, err := pi.ParseKind(c.Engine.Kind); err != nil {
		return invalid("engine.kind", c.Engine.Kind, "unknown engine kind")
	}
	if c.Engine.BatchWidth < 1 || c.Engine.BatchWidth > pi.MaxBatchWidth {
		return invalid("engine.batch_width", c.Engine.BatchWidth, fmt.Sprintf("batch width must be between 1 and %d", pi.MaxBatchWidth))
	}
	if c.Engine.Start < 0 {
		return invalid("engine.start", c.Engine.Start, "start position must not be negative")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.MaxBytes < 0 {
		return invalid("search.max_bytes", c.Search.MaxBytes, "max bytes must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return invalid("logging.level", c.Logging.Level, "unknown log level")
	}
	switch c.Logging.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return invalid("logging.format", c.Logging.Format, "unknown log format")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.MaxEntries < 0 {
		return invalid("history.max_entries", c.History.MaxEntries, "max entries must not be negative")
	}
	if c.History.Enabled && c.History.Path == "" {
		return invalid("history.path", c.History.Path, "history path is required when history is enabled")
	}
	r := c.History.Retry
	if NormalizeRetryBackoff(string(r.Backoff)) == "" {
		return invalid("history.retry.backoff", r.Backoff, "unknown retry backoff")
	}
	if r.Initial <= 0 || r.Max <= 0 {
		return invalid("history.retry", r, "retry delays must be positive")
	}
	if r.MaxRetries < 0 {
		return invalid("history.retry.max_retries", r.MaxRetries, "max retries must not be negative")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Addr == "" {
		return invalid("server.addr", c.Server.Addr, "server address must not be empty")
	}
	if c.Server.MaxDigits <= 0 {
		return invalid("server.max_digits", c.Server.MaxDigits, "max digits must be positive")
	}
	if c.Server.MaxPosition < 0 {
		return invalid("server.max_position", c.Server.MaxPosition, "max position must not be negative")
	}
	if c.Engine.Start > c.Server.MaxPosition {
		return invalid("engine.start", c.Engine.Start, "engine start exceeds server.max_position")
	}
	if c.Server.ReadTimeout < 0 {
		return invalid("server.read_timeout", c.Server.ReadTimeout, "read timeout must not be negative")
	}
	return nil
}
