// Package metrics provides observability hooks for digit generation and search.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder forwards to a Prometheus
// registry served by HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	svc := search.NewService(cfg, search.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
