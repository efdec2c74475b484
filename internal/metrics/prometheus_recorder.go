package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "pibary"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	digits         *prom.CounterVec
	bytesScanned   *prom.CounterVec
	searchDuration *prom.HistogramVec
	searchResults  *prom.CounterVec
	refineSteps    prom.Counter
	httpDuration   *prom.HistogramVec
}

// NewPrometheusRecorder constructs metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		digits: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "digits_total",
			Help:      "Digits produced by engine",
		}, []string{"engine"}),
		bytesScanned: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "search_bytes_scanned_total",
			Help:      "Packed bytes scanned while searching",
		}, []string{"engine"}),
		searchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of search runs",
			Buckets:   prom.ExponentialBuckets(0.001, 4, 10),
		}, []string{"engine"}),
		searchResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "search_results_total",
			Help:      "Search runs by outcome",
		}, []string{"result"}),
		refineSteps: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "spigot_refine_steps_total",
			Help:      "Spigot refinement steps that did not emit a digit",
		}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "status"}),
	}
	reg.MustRegister(pr.digits, pr.bytesScanned, pr.searchDuration, pr.searchResults, pr.refineSteps, pr.httpDuration)
	return pr
}

func (p *PrometheusRecorder) AddDigits(engine string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.digits.WithLabelValues(engine).Add(float64(n))
}

func (p *PrometheusRecorder) AddBytesScanned(engine string, n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.bytesScanned.WithLabelValues(engine).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveSearchDuration(engine string, d time.Duration) {
	if p == nil {
		return
	}
	p.searchDuration.WithLabelValues(engine).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSearchResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.searchResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddRefineSteps(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.refineSteps.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveHTTPRequest(route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
