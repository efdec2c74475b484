// Package httpserver wires the pibary HTTP API, metrics endpoint and
// middleware into a server with graceful shutdown.
package httpserver

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pibary/internal/config"
	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/logfields"
	"git.home.luguber.info/inful/pibary/internal/metrics"
	"git.home.luguber.info/inful/pibary/internal/server/handlers"
	"git.home.luguber.info/inful/pibary/internal/server/middleware"
)

const shutdownTimeout = 10 * time.Second

// Options configures optional server wiring.
type Options struct {
	// Registry backs /metrics. A nil registry disables the endpoint.
	Registry *prom.Registry
	// Recorder receives request and digit metrics. Defaults to NoopRecorder.
	Recorder metrics.Recorder
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server serves the pibary API.
type Server struct {
	cfg      *config.Config
	searcher handlers.Searcher
	opts     Options
	handler  http.Handler

	mu   sync.Mutex
	srv  *http.Server
	addr net.Addr
}

// New builds a server for cfg answering searches through searcher.
func New(cfg *config.Config, searcher handlers.Searcher, opts Options) *Server {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{cfg: cfg, searcher: searcher, opts: opts}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	digits := handlers.NewDigitHandlers(s.cfg, s.opts.Recorder)
	searches := handlers.NewSearchHandlers(s.searcher)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/digits", digits.HandleDigits)
	mux.HandleFunc("GET /api/digit/{position}", digits.HandleDigit)
	mux.HandleFunc("GET /api/search", searches.HandleSearch)
	mux.HandleFunc("GET /api/history", searches.HandleHistory)
	mux.Handle("GET /healthz", handlers.NewHealthHandler(s.cfg.Engine.Kind))
	if s.opts.Registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(s.opts.Registry))
	}

	adapter := errors.NewHTTPErrorAdapter(s.opts.Logger)
	return middleware.Chain(s.opts.Logger, adapter, s.opts.Recorder)(mux)
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the bound address once Run has started listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run binds cfg.Server.Addr and serves until ctx is canceled, then shuts
// down gracefully. ready, if non-nil, is closed once the listener is bound.
func (s *Server) Run(ctx context.Context, ready chan<- struct{}) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "http startup failed").
			WithContext("addr", s.cfg.Server.Addr).
			Build()
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.mu.Lock()
	s.srv = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	s.opts.Logger.Info("HTTP server started", logfields.Addr(ln.Addr().String()))
	if ready != nil {
		close(ready)
	}

	select {
	case err := <-serveErr:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.WrapError(err, errors.CategoryRuntime, "http server failed").Build()
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "http server shutdown").Build()
	}
	s.opts.Logger.Info("HTTP server stopped")
	return nil
}
