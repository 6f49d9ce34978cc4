// Package server exposes the linter over HTTP for editor integrations
// and CI dashboards. The surface is a small JSON API: check a document,
// list rules, browse run history.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/lint"
)

// Config holds configuration for the API server.
type Config struct {
	Host string
	Port int

	// LintConfig carries rule toggles and severity overrides applied to
	// every check request. Nil means defaults.
	LintConfig *lint.Config

	// Store serves the run history endpoints. Nil disables them.
	Store core.Store

	Logger *slog.Logger
}

// Server is the JSON API server.
type Server struct {
	host    string
	port    int
	lintCfg *lint.Config
	store   core.Store
	logger  *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	lintCfg := cfg.LintConfig
	if lintCfg == nil {
		lintCfg = lint.NewConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		host:    cfg.Host,
		port:    cfg.Port,
		lintCfg: lintCfg,
		store:   cfg.Store,
		logger:  logger,
	}
}

// Handler builds the route tree. Exposed separately from Serve so tests
// can drive it through httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/rules", s.handleListRules)
		r.Post("/check", s.handleCheck)
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handleListRuns)
			r.Get("/{id}", s.handleGetRun)
		})
	})

	return r
}

// Serve runs the API server until the context is cancelled, then shuts
// down gracefully, letting in-flight requests finish for a few seconds.
func (s *Server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	s.logger.Info("starting API server", "addr", "http://"+addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egctx := errgroup.WithContext(ctx)
	srv.BaseContext = func(net.Listener) context.Context { return egctx }

	eg.Go(func() error {
		err := srv.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	})
	eg.Go(func() error {
		<-egctx.Done()
		s.logger.Debug("shutting down API server")
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(stopCtx)
	})

	return eg.Wait()
}
