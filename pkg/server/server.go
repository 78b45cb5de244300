package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"quillhq/scribe/pkg/config"
	"quillhq/scribe/pkg/limits"
	"quillhq/scribe/pkg/providers"
	"quillhq/scribe/pkg/proxy"
	"quillhq/scribe/pkg/proxy/handlers"
	"quillhq/scribe/pkg/proxy/middleware"
	"quillhq/scribe/pkg/registry"
	"quillhq/scribe/pkg/telemetry/metrics"
)

// Options carries the server's collaborators. Registry is required;
// Provider, Metrics, and Quota may be nil (unconfigured credential,
// metrics disabled, quotas disabled).
type Options struct {
	Config   *config.Config
	Registry *registry.Registry
	Provider providers.Provider
	Metrics  *metrics.Collector
	Quota    *limits.Tracker
	Version  string
}

// Server is the HTTP server for the writing-tools proxy.
type Server struct {
	config  *config.Config
	opts    Options
	logger  *slog.Logger
	httpSrv *http.Server

	mu        sync.Mutex
	isRunning bool
}

// New creates a server from the given options.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}

	return &Server{
		config: opts.Config,
		opts:   opts,
		logger: slog.Default().With("component", "server"),
	}, nil
}

// Start begins serving and blocks until the context is cancelled or
// the listener fails. Shutdown is graceful, bounded by the configured
// shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true

	s.httpSrv = &http.Server{
		Addr:           s.config.Proxy.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Proxy.ReadTimeout,
		WriteTimeout:   s.config.Proxy.WriteTimeout,
		IdleTimeout:    s.config.Proxy.IdleTimeout,
		MaxHeaderBytes: s.config.Proxy.MaxHeaderBytes,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("server started",
			"address", s.config.Proxy.ListenAddress,
			"upstream", s.config.Upstream.Provider,
			"quotas_enabled", s.opts.Quota != nil,
		)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning || s.httpSrv == nil {
		return nil
	}
	s.isRunning = false

	s.logger.Info("shutting down", "timeout", s.config.Proxy.ShutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Proxy.ShutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Handler builds the full route and middleware stack. Exposed so tests
// can drive the server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	toolHandler := handlers.NewToolHandler(s.opts.Registry, s.opts.Provider, s.opts.Metrics)
	mux.Handle(handlers.PathPrefix, middleware.Quota(s.opts.Quota)(toolHandler))
	mux.Handle("/health", handlers.NewHealthHandler(s.opts.Version))

	if s.opts.Metrics != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.opts.Metrics.Handler())
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		proxy.WriteError(w, http.StatusNotFound, proxy.MsgEndpointNotFound)
	})

	var handler http.Handler = mux
	handler = middleware.Timeout(s.config.Proxy.RequestTimeout)(handler)
	handler = middleware.CORS(s.corsConfig())(handler)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)

	return handler
}

func (s *Server) corsConfig() *middleware.CORSConfig {
	cors := s.config.Proxy.CORS
	return &middleware.CORSConfig{
		AllowedOrigins: cors.AllowedOrigins,
		AllowedMethods: cors.AllowedMethods,
		AllowedHeaders: cors.AllowedHeaders,
		MaxAge:         cors.MaxAge,
		RejectUnknown:  cors.RejectUnknown,
	}
}
