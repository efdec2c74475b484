package handlers

import (
	"net/http"
	"time"

	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/server/responses"
	"git.home.luguber.info/inful/pibary/internal/version"
)

// HealthHandler reports liveness and build information.
type HealthHandler struct {
	engine       string
	started      time.Time
	errorAdapter *errors.HTTPErrorAdapter
}

// NewHealthHandler creates a health handler for a server started now.
func NewHealthHandler(engine string) *HealthHandler {
	return &HealthHandler{
		engine:       engine,
		started:      time.Now(),
		errorAdapter: errors.NewHTTPErrorAdapter(nil),
	}
}

// ServeHTTP serves GET /healthz.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond(w, r, h.errorAdapter, &responses.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Commit:    version.GitCommit,
		Uptime:    time.Since(h.started).Seconds(),
		Engine:    h.engine,
	})
}
