package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextValues(t *testing.T) {
	ctx := WithRunID(t.Context(), "run-1")
	ctx = WithEngine(ctx, "bellard")
	ctx = WithRequestID(ctx, "req-9")

	lc := GetContext(ctx)
	assert.Equal(t, "run-1", lc.RunID)
	assert.Equal(t, "bellard", lc.Engine)
	assert.Equal(t, "req-9", lc.RequestID)
}

func TestGetContext_Empty(t *testing.T) {
	assert.Equal(t, LogContext{}, GetContext(t.Context()))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo, "json").Info("hello")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])

	buf.Reset()
	NewLogger(&buf, slog.LevelInfo, "text").Info("hello")
	assert.True(t, strings.Contains(buf.String(), "msg=hello"))

	buf.Reset()
	NewLogger(&buf, slog.LevelWarn, "text").Info("dropped")
	assert.Empty(t, buf.String())
}

func TestInfoContext_IncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(orig) })

	ctx := WithEngine(WithRunID(t.Context(), "run-7"), "spigot")
	InfoContext(ctx, "search started", slog.Int("extra", 1))
	DebugContext(ctx, "debug line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "run-7", rec["run_id"])
	assert.Equal(t, "spigot", rec["engine"])
	assert.InDelta(t, 1, rec["extra"], 0)
	assert.Equal(t, "INFO", rec["level"])
}
