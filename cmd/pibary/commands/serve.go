package commands

import (
	"context"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/pibary/internal/metrics"
	"git.home.luguber.info/inful/pibary/internal/search"
	"git.home.luguber.info/inful/pibary/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `help:"Listen address; defaults to server.addr"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := prom.NewRegistry()
	registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(registry)

	history, err := search.OpenHistory(ctx, cfg.History)
	if err != nil {
		return err
	}
	svc, err := search.NewService(cfg, search.WithRecorder(recorder), search.WithHistory(history))
	if err != nil {
		_ = history.Close()
		return err
	}
	defer func() { _ = svc.Close() }()

	srv := httpserver.New(cfg, svc, httpserver.Options{
		Registry: registry,
		Recorder: recorder,
		Logger:   g.Logger,
	})
	g.Logger.Info("Starting pibary service")
	return srv.Run(ctx, nil)
}
