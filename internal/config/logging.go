package config

import "strings"

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// NormalizeLogLevel lowercases raw and maps an empty value to info.
// Unknown values are returned as-is for Validate to reject.
func NormalizeLogLevel(raw string) LogLevel {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "":
		return LogLevelInfo
	case "warning":
		return LogLevelWarn
	default:
		return LogLevel(s)
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// NormalizeLogFormat lowercases raw and maps an empty value to text.
func NormalizeLogFormat(raw string) LogFormat {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return LogFormatText
	}
	return LogFormat(s)
}
