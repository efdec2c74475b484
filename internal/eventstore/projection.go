// Package eventstore records search runs as events in SQLite and folds them
// into a history read model.
package eventstore

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"
)

const (
	searchStatusRunning = "running"
	searchStatusFound   = "found"
	searchStatusFailed  = "failed"
)

// SearchSummary is a read model summarizing a finished or in-progress search.
type SearchSummary struct {
	RunID        string        `json:"run_id"`
	Pattern      string        `json:"pattern"` // hex encoded
	Engine       string        `json:"engine"`
	MaxBytes     int64         `json:"max_bytes"`
	Status       string        `json:"status"` // "running", "found", "failed"
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	Duration     time.Duration `json:"duration"`
	Start        int64         `json:"start"`
	End          int64         `json:"end"`
	BytesScanned int64         `json:"bytes_scanned"`
	Outcome      string        `json:"outcome,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Found reports whether the search located its pattern.
func (s *SearchSummary) Found() bool {
	return s.Status == searchStatusFound
}

// SearchHistoryProjection maintains an in-memory view of search history,
// reconstructed from events stored in the event store.
type SearchHistoryProjection struct {
	mu      sync.RWMutex
	store   Store
	runs    map[string]*SearchSummary // runID -> summary
	history []*SearchSummary          // newest first
	hits    map[string]*SearchSummary // hex pattern -> most recent successful run
	maxSize int
}

// NewSearchHistoryProjection creates a new projection backed by the given store.
func NewSearchHistoryProjection(store Store, maxHistorySize int) *SearchHistoryProjection {
	if maxHistorySize <= 0 {
		maxHistorySize = 100
	}
	p := &SearchHistoryProjection{
		store:   store,
		maxSize: maxHistorySize,
	}
	p.resetLocked()
	return p
}

func (p *SearchHistoryProjection) resetLocked() {
	p.runs = make(map[string]*SearchSummary)
	p.history = make([]*SearchSummary, 0, p.maxSize)
	p.hits = make(map[string]*SearchSummary)
}

// Rebuild reconstructs the projection from all events in the store.
func (p *SearchHistoryProjection) Rebuild(ctx context.Context) error {
	events, err := p.store.GetRange(ctx, time.Time{}, time.Now().Add(time.Hour))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.resetLocked()
	for _, event := range events {
		p.applyEventLocked(event)
	}

	slices.SortStableFunc(p.history, func(a, b *SearchSummary) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	p.trimLocked()

	return nil
}

// Apply processes a single event and updates the projection.
func (p *SearchHistoryProjection) Apply(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyEventLocked(event)
}

func (p *SearchHistoryProjection) applyEventLocked(event Event) {
	runID := event.RunID()
	if runID == "" {
		return
	}

	summary, exists := p.runs[runID]
	if !exists {
		summary = &SearchSummary{
			RunID:     runID,
			Status:    searchStatusRunning,
			StartedAt: event.Timestamp(),
		}
		p.runs[runID] = summary
	}

	switch event.Type() {
	case TypeSearchStarted:
		summary.StartedAt = event.Timestamp()
		var payload struct {
			Pattern  string `json:"pattern"`
			Engine   string `json:"engine"`
			MaxBytes int64  `json:"max_bytes"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.Pattern = payload.Pattern
			summary.Engine = payload.Engine
			summary.MaxBytes = payload.MaxBytes
		}

	case TypeSearchCompleted:
		p.finishLocked(summary, event.Timestamp(), searchStatusFound)
		var payload struct {
			Start        int64 `json:"start"`
			End          int64 `json:"end"`
			BytesScanned int64 `json:"bytes_scanned"`
			DurationMS   int64 `json:"duration_ms"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.Start = payload.Start
			summary.End = payload.End
			summary.BytesScanned = payload.BytesScanned
			summary.Duration = time.Duration(payload.DurationMS) * time.Millisecond
		}
		if summary.Pattern != "" {
			p.hits[summary.Pattern] = summary
		}
		p.addToHistoryLocked(summary)

	case TypeSearchFailed:
		p.finishLocked(summary, event.Timestamp(), searchStatusFailed)
		var payload struct {
			Outcome      string `json:"outcome"`
			Error        string `json:"error"`
			BytesScanned int64  `json:"bytes_scanned"`
			DurationMS   int64  `json:"duration_ms"`
		}
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.Outcome = payload.Outcome
			summary.ErrorMessage = payload.Error
			summary.BytesScanned = payload.BytesScanned
			summary.Duration = time.Duration(payload.DurationMS) * time.Millisecond
		}
		p.addToHistoryLocked(summary)
	}
}

func (p *SearchHistoryProjection) finishLocked(summary *SearchSummary, at time.Time, status string) {
	summary.CompletedAt = &at
	summary.Duration = at.Sub(summary.StartedAt)
	summary.Status = status
}

func (p *SearchHistoryProjection) addToHistoryLocked(summary *SearchSummary) {
	for _, h := range p.history {
		if h.RunID == summary.RunID {
			return
		}
	}
	p.history = append([]*SearchSummary{summary}, p.history...)
	p.trimLocked()
}

// trimLocked bounds history and drops finished runs that fell out of it.
// Running searches and cached hits are kept. Caller must hold p.mu.
func (p *SearchHistoryProjection) trimLocked() {
	if len(p.history) > p.maxSize {
		p.history = p.history[:p.maxSize]
	}

	keep := make(map[string]struct{}, len(p.history))
	for _, h := range p.history {
		keep[h.RunID] = struct{}{}
	}
	for id, summary := range p.runs {
		if summary.Status == searchStatusRunning {
			continue
		}
		if _, ok := keep[id]; !ok {
			delete(p.runs, id)
		}
	}
}

// GetHistory returns up to limit finished searches, newest first.
// A limit <= 0 returns the whole retained history.
func (p *SearchHistoryProjection) GetHistory(limit int) []SearchSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := len(p.history)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]SearchSummary, n)
	for i := range n {
		result[i] = *p.history[i]
	}
	return result
}

// Lookup returns the most recent successful search for a hex encoded pattern.
func (p *SearchHistoryProjection) Lookup(hexPattern string) (SearchSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	summary, ok := p.hits[hexPattern]
	if !ok {
		return SearchSummary{}, false
	}
	return *summary, true
}
