package handlers

import (
	"context"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"

	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/eventstore"
	"git.home.luguber.info/inful/pibary/internal/pi"
	"git.home.luguber.info/inful/pibary/internal/search"
	"git.home.luguber.info/inful/pibary/internal/server/responses"
)

// Searcher is the search service surface used by the handlers.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (search.Result, error)
	History(limit int) ([]eventstore.SearchSummary, error)
}

// SearchHandlers serves pattern search and history.
type SearchHandlers struct {
	searcher     Searcher
	errorAdapter *errors.HTTPErrorAdapter
}

// NewSearchHandlers creates search handlers.
func NewSearchHandlers(searcher Searcher) *SearchHandlers {
	return &SearchHandlers{
		searcher:     searcher,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleSearch serves GET /api/search?q=<text>|hex=<bytes>&engine=&max_bytes=.
func (h *SearchHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	pattern, err := patternParam(r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	maxBytes, err := int64Param(r, "max_bytes", search.DefaultBound)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	res, err := h.searcher.Search(r.Context(), search.Request{
		Pattern:  pattern,
		Engine:   pi.Kind(r.URL.Query().Get("engine")),
		MaxBytes: maxBytes,
	})
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, h.errorAdapter, &responses.SearchResponse{
		RunID:        res.RunID,
		Engine:       string(res.Engine),
		Pattern:      hex.EncodeToString(pattern),
		Start:        res.Start,
		End:          res.End,
		Range:        strconv.FormatInt(res.Start, 10) + ".." + strconv.FormatInt(res.End, 10),
		BytesScanned: res.Scanned,
		DurationMS:   float64(res.Duration.Microseconds()) / 1000,
		Cached:       res.Cached,
	})
}

// HandleHistory serves GET /api/history?limit=.
func (h *SearchHandlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := int64Param(r, "limit", 20)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	summaries, err := h.searcher.History(int(limit))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, h.errorAdapter, &responses.HistoryResponse{Count: len(summaries), Searches: summaries})
}

// patternParam reads the raw text in q or the hex encoded bytes in hex.
func patternParam(r *http.Request) ([]byte, error) {
	q := r.URL.Query()
	if h := q.Get("hex"); h != "" {
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "invalid hex pattern").
				WithContext("hex", h).
				Build()
		}
		return b, nil
	}
	if text := q.Get("q"); text != "" {
		return []byte(text), nil
	}
	return nil, errors.ValidationError("missing search pattern").
		WithContext("hint", "pass q=<text> or hex=<bytes>").
		Build()
}
