package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pibary/internal/config"
	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/eventstore"
	"git.home.luguber.info/inful/pibary/internal/metrics"
	"git.home.luguber.info/inful/pibary/internal/search"
	"git.home.luguber.info/inful/pibary/internal/server/responses"
)

type fakeSearcher struct {
	got     search.Request
	result  search.Result
	err     error
	history []eventstore.SearchSummary
	limit   int
}

func (f *fakeSearcher) Search(_ context.Context, req search.Request) (search.Result, error) {
	f.got = req
	return f.result, f.err
}

func (f *fakeSearcher) History(limit int) ([]eventstore.SearchSummary, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

func newMux(cfg *config.Config, s Searcher) *http.ServeMux {
	digits := NewDigitHandlers(cfg, nil)
	searches := NewSearchHandlers(s)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/digits", digits.HandleDigits)
	mux.HandleFunc("GET /api/digit/{position}", digits.HandleDigit)
	mux.HandleFunc("GET /api/search", searches.HandleSearch)
	mux.HandleFunc("GET /api/history", searches.HandleHistory)
	mux.Handle("GET /healthz", NewHealthHandler(cfg.Engine.Kind))
	return mux
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandleDigits(t *testing.T) {
	mux := newMux(config.Default(), &fakeSearcher{})

	tests := []struct {
		target string
		want   string
		start  int64
	}{
		{"/api/digits?count=10", "3141592653", 0},
		{"/api/digits?count=5&start=1&engine=bellard", "14159", 1},
		{"/api/digits?count=3&start=4&engine=spigot", "592", 4},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, mux, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			resp := decode[responses.DigitsResponse](t, rec)
			assert.Equal(t, tt.want, resp.Digits)
			assert.Equal(t, tt.start, resp.Start)
			assert.Equal(t, len(tt.want), resp.Count)
		})
	}
}

func TestHandleDigits_Validation(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxDigits = 50
	mux := newMux(cfg, &fakeSearcher{})

	for _, target := range []string{
		"/api/digits?count=0",
		"/api/digits?count=51",
		"/api/digits?count=abc",
		"/api/digits?start=-1",
		"/api/digits?engine=abacus",
		"/api/digits?count=1&engine=spigot&start=2000000",
		"/api/digits?count=1&engine=bellard&start=10001",
	} {
		rec := get(t, mux, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		resp := decode[errors.HTTPErrorResponse](t, rec)
		assert.Equal(t, string(errors.CategoryValidation), resp.Code, target)
	}
}

func TestHandleDigit(t *testing.T) {
	mux := newMux(config.Default(), &fakeSearcher{})

	rec := get(t, mux, "/api/digit/0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, responses.DigitResponse{Position: 0, Digit: 3}, decode[responses.DigitResponse](t, rec))

	rec = get(t, mux, "/api/digit/5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint8(9), decode[responses.DigitResponse](t, rec).Digit)

	rec = get(t, mux, "/api/digit/-3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDigit_BeyondMaxPosition(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxPosition = 100
	mux := newMux(cfg, &fakeSearcher{})

	rec := get(t, mux, "/api/digit/100")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, target := range []string{"/api/digit/101", "/api/digit/100000000000"} {
		rec = get(t, mux, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		resp := decode[errors.HTTPErrorResponse](t, rec)
		assert.Equal(t, string(errors.CategoryValidation), resp.Code, target)
	}
}

type digitCounter map[string]int

func (c digitCounter) AddDigits(engine string, n int)              { c[engine] += n }
func (digitCounter) AddBytesScanned(string, int64)                 {}
func (digitCounter) ObserveSearchDuration(string, time.Duration)   {}
func (digitCounter) IncSearchResult(metrics.ResultLabel)           {}
func (digitCounter) AddRefineSteps(int)                            {}
func (digitCounter) ObserveHTTPRequest(string, int, time.Duration) {}

func TestDigitHandlers_RecordsEngineLabels(t *testing.T) {
	counter := digitCounter{}
	h := NewDigitHandlers(config.Default(), counter)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/digit/7", nil)
	req.SetPathValue("position", "7")
	h.HandleDigit(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleDigits(rec, httptest.NewRequest(http.MethodGet, "/api/digits?count=4&engine=bellard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, digitCounter{metrics.EnginePosition: 1, "bellard": 4}, counter)
}

func TestHandleSearch(t *testing.T) {
	fake := &fakeSearcher{result: search.Result{
		RunID: "run-1", Engine: "spigot", Start: 4, End: 6, Scanned: 6, Duration: time.Millisecond,
	}}
	mux := newMux(config.Default(), fake)

	rec := get(t, mux, "/api/search?q=hi&engine=spigot&max_bytes=100")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[responses.SearchResponse](t, rec)
	assert.Equal(t, "4..6", resp.Range)
	assert.Equal(t, "6869", resp.Pattern)
	assert.Equal(t, "run-1", resp.RunID)
	assert.InDelta(t, 1.0, resp.DurationMS, 0.001)

	assert.Equal(t, []byte("hi"), fake.got.Pattern)
	assert.Equal(t, int64(100), fake.got.MaxBytes)

	rec = get(t, mux, "/api/search?hex=d1ff")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte{0xd1, 0xff}, fake.got.Pattern)
	assert.Equal(t, search.DefaultBound, fake.got.MaxBytes)
}

func TestHandleSearch_Errors(t *testing.T) {
	mux := newMux(config.Default(), &fakeSearcher{})
	assert.Equal(t, http.StatusBadRequest, get(t, mux, "/api/search").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, mux, "/api/search?hex=zz").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, mux, "/api/search?q=a&max_bytes=x").Code)

	notFound := &fakeSearcher{err: errors.NotFoundError("pattern not found").WithContext("bytes", []byte("a")).Build()}
	rec := get(t, newMux(config.Default(), notFound), "/api/search?q=a")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(errors.CategoryNotFound), decode[errors.HTTPErrorResponse](t, rec).Code)

	canceled := &fakeSearcher{err: errors.WrapError(context.DeadlineExceeded, errors.CategoryRuntime, "search interrupted").Build()}
	assert.Equal(t, http.StatusServiceUnavailable, get(t, newMux(config.Default(), canceled), "/api/search?q=a").Code)
}

func TestHandleHistory(t *testing.T) {
	fake := &fakeSearcher{history: []eventstore.SearchSummary{{RunID: "run-2"}, {RunID: "run-1"}}}
	mux := newMux(config.Default(), fake)

	rec := get(t, mux, "/api/history?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[responses.HistoryResponse](t, rec)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "run-2", resp.Searches[0].RunID)
	assert.Equal(t, 5, fake.limit)

	disabled := &fakeSearcher{err: errors.ConfigError("search history is disabled").Build()}
	assert.Equal(t, http.StatusBadRequest, get(t, newMux(config.Default(), disabled), "/api/history").Code)
}

func TestHealthHandler(t *testing.T) {
	mux := newMux(config.Default(), &fakeSearcher{})
	rec := get(t, mux, "/healthz?pretty=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\n  \"status\": \"ok\"")

	resp := decode[responses.HealthResponse](t, rec)
	assert.Equal(t, "spigot", resp.Engine)
	assert.NotEmpty(t, resp.Version)
}
