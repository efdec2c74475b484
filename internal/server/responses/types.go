// Package responses defines API response types used by pibary HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/pibary/internal/eventstore"
)

// DigitsResponse is a run of consecutive digits of π.
type DigitsResponse struct {
	Engine string `json:"engine"`
	Start  int64  `json:"start"`
	Count  int    `json:"count"`
	Digits string `json:"digits"`
}

// DigitResponse is a single digit computed by position.
type DigitResponse struct {
	Position int64 `json:"position"`
	Digit    uint8 `json:"digit"`
}

// SearchResponse reports where a pattern occurs in the packed byte stream.
// The range is half-open: [Start, End).
type SearchResponse struct {
	RunID        string  `json:"run_id"`
	Engine       string  `json:"engine"`
	Pattern      string  `json:"pattern"` // hex encoded
	Start        int64   `json:"start"`
	End          int64   `json:"end"`
	Range        string  `json:"range"`
	BytesScanned int64   `json:"bytes_scanned"`
	DurationMS   float64 `json:"duration_ms"`
	Cached       bool    `json:"cached"`
}

// HistoryResponse lists recorded searches, newest first.
type HistoryResponse struct {
	Count    int                        `json:"count"`
	Searches []eventstore.SearchSummary `json:"searches"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Commit    string    `json:"commit"`
	Uptime    float64   `json:"uptime"`
	Engine    string    `json:"engine"`
}
