package metrics

import "time"

// ResultLabel enumerates search outcomes for counters.
type ResultLabel string

const (
	ResultFound    ResultLabel = "found"
	ResultCached   ResultLabel = "cached"
	ResultNotFound ResultLabel = "not_found"
	ResultCanceled ResultLabel = "canceled"
	ResultError    ResultLabel = "error"
)

// EnginePosition labels digits computed by single-position queries, which
// bypass the streaming engines.
const EnginePosition = "position"

// Recorder defines observability hooks for engines, searches and the HTTP
// service. Implementations may forward to Prometheus or a test double.
type Recorder interface {
	AddDigits(engine string, n int)
	AddBytesScanned(engine string, n int64)
	ObserveSearchDuration(engine string, d time.Duration)
	IncSearchResult(result ResultLabel)
	AddRefineSteps(n int)
	ObserveHTTPRequest(route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) AddDigits(string, int)                         {}
func (NoopRecorder) AddBytesScanned(string, int64)                 {}
func (NoopRecorder) ObserveSearchDuration(string, time.Duration)   {}
func (NoopRecorder) IncSearchResult(ResultLabel)                   {}
func (NoopRecorder) AddRefineSteps(int)                            {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration) {}
