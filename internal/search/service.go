// Package search locates byte patterns in the packed digit stream of π and
// records each run in the search history.
package search

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pibary/internal/bytestream"
	"git.home.luguber.info/inful/pibary/internal/config"
	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/eventstore"
	"git.home.luguber.info/inful/pibary/internal/locate"
	"git.home.luguber.info/inful/pibary/internal/logfields"
	"git.home.luguber.info/inful/pibary/internal/metrics"
	"git.home.luguber.info/inful/pibary/internal/observability"
	"git.home.luguber.info/inful/pibary/internal/pi"
)

// DefaultBound selects the configured search.max_bytes bound.
const DefaultBound int64 = -1

// Request describes one search.
type Request struct {
	Pattern []byte
	// Engine selects the digit source; empty uses the configured engine.
	Engine pi.Kind
	// MaxBytes bounds the scan; 0 is unbounded and DefaultBound uses the configuration.
	MaxBytes int64
}

// Result is the outcome of a successful search.
type Result struct {
	RunID    string        `json:"run_id"`
	Engine   pi.Kind       `json:"engine"`
	Start    int64         `json:"start"`
	End      int64         `json:"end"`
	Scanned  int64         `json:"bytes_scanned"`
	Duration time.Duration `json:"duration"`
	Cached   bool          `json:"cached"`
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithHistory records runs through emitter and answers repeated patterns
// from its projection.
func WithHistory(emitter *EventEmitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

// WithRunIDs overrides run ID generation.
func WithRunIDs(next func() string) Option {
	return func(s *Service) { s.newRunID = next }
}

// Service runs searches against a fresh engine per request.
type Service struct {
	engine     pi.Kind
	batchWidth int
	maxBytes   int64
	recorder   metrics.Recorder
	emitter    *EventEmitter
	newRunID   func() string
}

// NewService builds a Service from the engine and search configuration.
func NewService(cfg *config.Config, opts ...Option) (*Service, error) {
	kind, err := pi.ParseKind(cfg.Engine.Kind)
	if err != nil {
		return nil, err
	}
	s := &Service{
		engine:     kind,
		batchWidth: cfg.Engine.BatchWidth,
		maxBytes:   cfg.Search.MaxBytes,
		recorder:   metrics.NoopRecorder{},
		newRunID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Engine returns the configured default engine.
func (s *Service) Engine() pi.Kind { return s.engine }

// Search finds the first occurrence of req.Pattern in the packed byte stream.
func (s *Service) Search(ctx context.Context, req Request) (Result, error) {
	if len(req.Pattern) == 0 {
		return Result{}, errors.ValidationError("search pattern must not be empty").Build()
	}
	kind := s.engine
	if req.Engine != "" {
		k, err := pi.ParseKind(string(req.Engine))
		if err != nil {
			return Result{}, err
		}
		kind = k
	}
	bound := req.MaxBytes
	if bound == DefaultBound {
		bound = s.maxBytes
	}
	if bound < 0 {
		return Result{}, errors.ValidationError("max bytes must not be negative").
			WithContext("max_bytes", bound).
			Build()
	}

	hexPattern := hex.EncodeToString(req.Pattern)
	if res, ok := s.cached(hexPattern, bound); ok {
		s.recorder.IncSearchResult(metrics.ResultCached)
		observability.DebugContext(ctx, "Search answered from history",
			logfields.Pattern(hexPattern), logfields.RunID(res.RunID))
		return res, nil
	}

	runID := s.newRunID()
	ctx = observability.WithRunID(ctx, runID)
	ctx = observability.WithEngine(ctx, string(kind))

	if err := s.emitter.EmitSearchStarted(ctx, runID, eventstore.SearchStartedMeta{
		Pattern:  req.Pattern,
		Engine:   string(kind),
		MaxBytes: bound,
	}); err != nil {
		observability.WarnContext(ctx, "Failed to record search start", logfields.Error(err))
	}
	observability.DebugContext(ctx, "Search started",
		logfields.Pattern(hexPattern), logfields.MaxBytes(bound))

	src, err := pi.NewSource(kind, 0, s.batchWidth)
	if err != nil {
		return Result{}, err
	}
	gen := bytestream.New(src)

	start := time.Now()
	res, findErr := locate.Find(ctx, gen, req.Pattern, bound)
	elapsed := time.Since(start)

	s.recorder.AddDigits(string(kind), int(gen.DigitsPulled()))
	s.recorder.AddBytesScanned(string(kind), res.Scanned)
	s.recorder.ObserveSearchDuration(string(kind), elapsed)
	if sp, ok := src.(*pi.Spigot); ok {
		s.recorder.AddRefineSteps(int(sp.RefineSteps()))
	}

	if findErr != nil {
		outcome := errors.GetCategory(findErr)
		s.recorder.IncSearchResult(resultLabel(outcome))
		if err := s.emitter.EmitSearchFailed(ctx, runID, string(outcome), findErr, res.Scanned, elapsed); err != nil {
			observability.WarnContext(ctx, "Failed to record search failure", logfields.Error(err))
		}
		observability.InfoContext(ctx, "Search ended without match",
			logfields.Pattern(hexPattern),
			logfields.BytesScanned(res.Scanned),
			logfields.DurationMS(float64(elapsed.Microseconds())/1000),
			logfields.Error(findErr))
		return Result{}, findErr
	}

	s.recorder.IncSearchResult(metrics.ResultFound)
	if err := s.emitter.EmitSearchCompleted(ctx, runID, res, elapsed); err != nil {
		observability.WarnContext(ctx, "Failed to record search result", logfields.Error(err))
	}
	observability.InfoContext(ctx, "Search found pattern",
		logfields.Pattern(hexPattern),
		logfields.MatchStart(res.Match.Start),
		logfields.MatchEnd(res.Match.End),
		logfields.BytesScanned(res.Scanned),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))

	return Result{
		RunID:    runID,
		Engine:   kind,
		Start:    res.Match.Start,
		End:      res.Match.End,
		Scanned:  res.Scanned,
		Duration: elapsed,
	}, nil
}

// History returns up to limit recorded searches, newest first.
func (s *Service) History(limit int) ([]eventstore.SearchSummary, error) {
	projection := s.emitter.Projection()
	if projection == nil {
		return nil, errors.ConfigError("search history is disabled").
			WithContext("hint", "set history.enabled: true").
			Build()
	}
	return projection.GetHistory(limit), nil
}

// Close releases the history store.
func (s *Service) Close() error {
	return s.emitter.Close()
}

// cached returns a recorded hit for the pattern if it lies within bound.
// Every engine yields the same byte stream, so hits are shared across engines.
func (s *Service) cached(hexPattern string, bound int64) (Result, bool) {
	projection := s.emitter.Projection()
	if projection == nil {
		return Result{}, false
	}
	hit, ok := projection.Lookup(hexPattern)
	if !ok || (bound != 0 && hit.End > bound) {
		return Result{}, false
	}
	return Result{
		RunID:    hit.RunID,
		Engine:   pi.Kind(hit.Engine),
		Start:    hit.Start,
		End:      hit.End,
		Scanned:  hit.BytesScanned,
		Duration: hit.Duration,
		Cached:   true,
	}, true
}

func resultLabel(category errors.ErrorCategory) metrics.ResultLabel {
	switch category {
	case errors.CategoryNotFound:
		return metrics.ResultNotFound
	case errors.CategoryRuntime:
		return metrics.ResultCanceled
	default:
		return metrics.ResultError
	}
}
