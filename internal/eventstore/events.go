package eventstore

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/pibary/internal/errors"
)

// Event type names.
const (
	TypeSearchStarted   = "SearchStarted"
	TypeSearchCompleted = "SearchCompleted"
	TypeSearchFailed    = "SearchFailed"
)

// SearchStartedMeta describes the parameters of a search run.
type SearchStartedMeta struct {
	Pattern  []byte `json:"-"`
	Engine   string `json:"engine"`
	MaxBytes int64  `json:"max_bytes"`
}

// SearchStarted is emitted when a search run begins.
type SearchStarted struct {
	BaseEvent
	Meta SearchStartedMeta
}

// NewSearchStarted creates a SearchStarted event.
func NewSearchStarted(runID string, meta SearchStartedMeta) (*SearchStarted, error) {
	payload, err := json.Marshal(map[string]any{
		"pattern":   hex.EncodeToString(meta.Pattern),
		"engine":    meta.Engine,
		"max_bytes": meta.MaxBytes,
	})
	if err != nil {
		return nil, errors.EventStoreError("failed to marshal SearchStarted payload").
			WithCause(err).
			WithContext("run_id", runID).
			Build()
	}

	return &SearchStarted{
		BaseEvent: BaseEvent{
			EventRunID:     runID,
			EventType:      TypeSearchStarted,
			EventTimestamp: time.Now(),
			EventPayload:   payload,
		},
		Meta: meta,
	}, nil
}

// SearchCompleted is emitted when a pattern was located.
type SearchCompleted struct {
	BaseEvent
	Start        int64         `json:"start"`
	End          int64         `json:"end"`
	BytesScanned int64         `json:"bytes_scanned"`
	Duration     time.Duration `json:"duration_ms"`
}

// NewSearchCompleted creates a SearchCompleted event.
func NewSearchCompleted(runID string, start, end, scanned int64, duration time.Duration) (*SearchCompleted, error) {
	payload, err := json.Marshal(map[string]any{
		"start":         start,
		"end":           end,
		"bytes_scanned": scanned,
		"duration_ms":   duration.Milliseconds(),
	})
	if err != nil {
		return nil, errors.EventStoreError("failed to marshal SearchCompleted payload").
			WithCause(err).
			WithContext("run_id", runID).
			Build()
	}

	return &SearchCompleted{
		BaseEvent: BaseEvent{
			EventRunID:     runID,
			EventType:      TypeSearchCompleted,
			EventTimestamp: time.Now(),
			EventPayload:   payload,
		},
		Start:        start,
		End:          end,
		BytesScanned: scanned,
		Duration:     duration,
	}, nil
}

// SearchFailed is emitted when a search ends without a match.
type SearchFailed struct {
	BaseEvent
	Outcome      string        `json:"outcome"`
	Error        string        `json:"error"`
	BytesScanned int64         `json:"bytes_scanned"`
	Duration     time.Duration `json:"duration_ms"`
}

// NewSearchFailed creates a SearchFailed event. Outcome is the error category,
// e.g. "not_found" or "runtime".
func NewSearchFailed(runID, outcome, errorMsg string, scanned int64, duration time.Duration) (*SearchFailed, error) {
	payload, err := json.Marshal(map[string]any{
		"outcome":       outcome,
		"error":         errorMsg,
		"bytes_scanned": scanned,
		"duration_ms":   duration.Milliseconds(),
	})
	if err != nil {
		return nil, errors.EventStoreError("failed to marshal SearchFailed payload").
			WithCause(err).
			WithContext("run_id", runID).
			Build()
	}

	return &SearchFailed{
		BaseEvent: BaseEvent{
			EventRunID:     runID,
			EventType:      TypeSearchFailed,
			EventTimestamp: time.Now(),
			EventPayload:   payload,
		},
		Outcome:      outcome,
		Error:        errorMsg,
		BytesScanned: scanned,
		Duration:     duration,
	}, nil
}
