package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyEngine       = "engine"
	KeyPosition     = "position"
	KeyCount        = "count"
	KeyBatchWidth   = "batch_width"
	KeyPattern      = "pattern"
	KeyRunID        = "run_id"
	KeyBytesScanned = "bytes_scanned"
	KeyMaxBytes     = "max_bytes"
	KeyMatchStart   = "match_start"
	KeyMatchEnd     = "match_end"
	KeyDurationMS   = "duration_ms"
	KeyPath         = "path"
	KeyAddr         = "addr"
	KeyMethod       = "method"
	KeyRoute        = "route"
	KeyStatus       = "status"
	KeyRemoteAddr   = "remote_addr"
	KeyRequestID    = "request_id"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Engine(name string) slog.Attr     { return slog.String(KeyEngine, name) }
func Position(p int64) slog.Attr       { return slog.Int64(KeyPosition, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func BatchWidth(w int) slog.Attr       { return slog.Int(KeyBatchWidth, w) }
func Pattern(hex string) slog.Attr     { return slog.String(KeyPattern, hex) }
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func BytesScanned(n int64) slog.Attr   { return slog.Int64(KeyBytesScanned, n) }
func MaxBytes(n int64) slog.Attr       { return slog.Int64(KeyMaxBytes, n) }
func MatchStart(n int64) slog.Attr     { return slog.Int64(KeyMatchStart, n) }
func MatchEnd(n int64) slog.Attr       { return slog.Int64(KeyMatchEnd, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Route(r string) slog.Attr         { return slog.String(KeyRoute, r) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func RequestID(id string) slog.Attr     { return slog.String(KeyRequestID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
