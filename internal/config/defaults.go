package config

import (
	"time"

	"git.home.luguber.info/inful/pibary/internal/pi"
)

// Default values.
const (
	DefaultEngine      = string(pi.KindSpigot)
	DefaultMaxBytes    = 1 << 16
	DefaultHistoryPath = "pibary-history.db"
	DefaultMaxEntries  = 100
	DefaultRetries     = 3
	DefaultRetryDelay  = 100 * time.Millisecond
	DefaultRetryMax    = 2 * time.Second
	DefaultAddr        = ":8080"
	DefaultMaxDigits   = 10000
	DefaultMaxPosition = 10000
	DefaultReadTimeout = 10 * time.Second
)

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Kind:       DefaultEngine,
			BatchWidth: pi.DefaultBatchWidth,
		},
		Search: SearchConfig{
			MaxBytes: DefaultMaxBytes,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		History: HistoryConfig{
			Path:       DefaultHistoryPath,
			MaxEntries: DefaultMaxEntries,
			Retry: RetryConfig{
				Backoff:    RetryBackoffExponential,
				Initial:    DefaultRetryDelay,
				Max:        DefaultRetryMax,
				MaxRetries: DefaultRetries,
			},
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			MaxDigits:   DefaultMaxDigits,
			MaxPosition: DefaultMaxPosition,
			ReadTimeout: DefaultReadTimeout,
		},
	}
}
