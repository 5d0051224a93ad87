// Package server exposes the wireframe pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
)

// Pipeline is the part of *generator.Generator the API needs.
type Pipeline interface {
	GenerateWireframe(ctx context.Context, req generator.WireframeRequest) (*generator.Result, error)
	GeneratePages(ctx context.Context, description string) (*generator.PagesResult, error)
	ProcessReply(raw, description string) (*generator.Result, error)
}

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Config holds what New needs.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Pipeline       Pipeline
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer     prometheus.Gatherer
	MaxBodyBytes int64
}

// Server is the HTTP API.
type Server struct {
	pipeline     Pipeline
	origins      map[string]struct{}
	gatherer     prometheus.Gatherer
	maxBodyBytes int64
	server       *http.Server
}

// New builds a Server. It does not start listening.
func New(cfg Config) (*Server, error) {
	if cfg.Pipeline == nil {
		return nil, errors.New("server: pipeline is required")
	}
	s := &Server{
		pipeline:     cfg.Pipeline,
		origins:      make(map[string]struct{}, len(cfg.AllowedOrigins)),
		gatherer:     cfg.Gatherer,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	for _, o := range cfg.AllowedOrigins {
		s.origins[o] = struct{}{}
	}

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("API server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("API server stopped")
	return nil
}
