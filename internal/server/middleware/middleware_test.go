package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pibary/internal/metrics"
	"git.home.luguber.info/inful/pibary/internal/observability"
)

type routeRecorder struct {
	routes   []string
	statuses []int
}

func (r *routeRecorder) AddDigits(string, int)                       {}
func (r *routeRecorder) AddBytesScanned(string, int64)               {}
func (r *routeRecorder) ObserveSearchDuration(string, time.Duration) {}
func (r *routeRecorder) IncSearchResult(metrics.ResultLabel)         {}
func (r *routeRecorder) AddRefineSteps(int)                          {}
func (r *routeRecorder) ObserveHTTPRequest(route string, status int, _ time.Duration) {
	r.routes = append(r.routes, route)
	r.statuses = append(r.statuses, status)
}

func newChain(t *testing.T, rec *routeRecorder) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/digit/{position}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	mux.HandleFunc("GET /whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(observability.GetContext(r.Context()).RequestID))
	})
	mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})
	return Chain(logger, nil, rec)(mux), &logs
}

func TestChain_RecordsRoutePattern(t *testing.T) {
	rec := &routeRecorder{}
	h, logs := newChain(t, rec)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/digit/42", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	require.Len(t, rec.routes, 1)
	assert.Equal(t, "GET /api/digit/{position}", rec.routes[0])
	assert.Equal(t, http.StatusTeapot, rec.statuses[0])
	assert.Contains(t, logs.String(), `"path":"/api/digit/42"`)
}

func TestChain_UnmatchedRoute(t *testing.T) {
	rec := &routeRecorder{}
	h, _ := newChain(t, rec)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.Len(t, rec.routes, 1)
	assert.Equal(t, unmatchedRoute, rec.routes[0])
}

func TestChain_RecoversPanics(t *testing.T) {
	rec := &routeRecorder{}
	h, logs := newChain(t, rec)

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"internal"`)
	assert.Contains(t, logs.String(), "HTTP handler panic")
	assert.Equal(t, []int{http.StatusInternalServerError}, rec.statuses)
}

func TestChain_PropagatesRequestID(t *testing.T) {
	rec := &routeRecorder{}
	h, logs := newChain(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Contains(t, logs.String(), `"request_id":"req-42"`)
	assert.Equal(t, []string{"GET /whoami"}, rec.routes)
}

func TestChain_AssignsRequestID(t *testing.T) {
	h, _ := newChain(t, &routeRecorder{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
}
