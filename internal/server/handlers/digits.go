package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"git.home.luguber.info/inful/pibary/internal/config"
	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/metrics"
	"git.home.luguber.info/inful/pibary/internal/pi"
	"git.home.luguber.info/inful/pibary/internal/server/responses"
)

const defaultDigitCount = 100

// DigitHandlers serves digit streams and positional digits.
type DigitHandlers struct {
	config       *config.Config
	recorder     metrics.Recorder
	errorAdapter *errors.HTTPErrorAdapter
}

// NewDigitHandlers creates digit handlers. A nil recorder disables metrics.
func NewDigitHandlers(cfg *config.Config, recorder metrics.Recorder) *DigitHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &DigitHandlers{
		config:       cfg,
		recorder:     recorder,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleDigits serves GET /api/digits?count=&start=&engine=.
func (h *DigitHandlers) HandleDigits(w http.ResponseWriter, r *http.Request) {
	count, err := int64Param(r, "count", defaultDigitCount)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if count < 1 || count > int64(h.config.Server.MaxDigits) {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("count out of range").
			WithContext("count", count).
			WithContext("max", h.config.Server.MaxDigits).
			Build())
		return
	}

	start, err := int64Param(r, "start", h.config.Engine.Start)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if start > h.config.Server.MaxPosition {
		h.errorAdapter.WriteErrorResponse(w, r, h.beyondMaxPosition("start", start))
		return
	}

	engine := r.URL.Query().Get("engine")
	if engine == "" {
		engine = h.config.Engine.Kind
	}
	kind, err := pi.ParseKind(engine)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	src, err := pi.NewSource(kind, start, h.config.Engine.BatchWidth)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	digits := pi.Take(src, int(count))
	h.recorder.AddDigits(string(kind), len(digits))

	respond(w, r, h.errorAdapter, &responses.DigitsResponse{
		Engine: string(kind),
		Start:  start,
		Count:  len(digits),
		Digits: pi.Format(digits),
	})
}

// HandleDigit serves GET /api/digit/{position}.
func (h *DigitHandlers) HandleDigit(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("position")
	position, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || position < 0 {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("position must be a non-negative integer").
			WithContext("position", raw).
			Build())
		return
	}
	if position > h.config.Server.MaxPosition {
		h.errorAdapter.WriteErrorResponse(w, r, h.beyondMaxPosition("position", position))
		return
	}

	d := pi.DigitAt(position)
	h.recorder.AddDigits(metrics.EnginePosition, 1)

	respond(w, r, h.errorAdapter, &responses.DigitResponse{Position: position, Digit: d})
}

func (h *DigitHandlers) beyondMaxPosition(param string, value int64) error {
	return errors.ValidationError(param+" exceeds the maximum position").
		WithContext(param, value).
		WithContext("max_position", h.config.Server.MaxPosition).
		Build()
}
