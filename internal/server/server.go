// Package server exposes the samas annotator over HTTP: an HTML form at / and a JSON
// API under /api.
//
// Endpoints:
//
//	GET  /                     form page
//	POST /                     form page with results (form field "text")
//	POST /api/process          body: {"text":"..."}
//	GET  /api/lookup?word=<w>
//	GET  /api/categories
//	GET  /healthz
//	GET  /metrics
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"yashubustudio/samas/samas"
)

const maxBodyBytes = 1 << 20

// Server serves a loaded samas.Service.
type Server struct {
	svc     *samas.Service
	cfg     samas.ServerConfig
	logger  *log.Logger
	metrics *metrics
	ids     *idSource
	handler http.Handler
}

// New builds the HTTP handler tree for svc.
func New(svc *samas.Service, cfg samas.ServerConfig, logger *log.Logger) *Server {
	s := &Server{
		svc:     svc,
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
		ids:     newIDSource(),
	}
	s.metrics.rows.Set(float64(svc.Dataset().Len()))

	mux := http.NewServeMux()
	s.route(mux, "/", "form", s.handleForm)
	s.route(mux, "/api/process", "process", s.handleProcess)
	s.route(mux, "/api/lookup", "lookup", s.handleLookup)
	s.route(mux, "/api/categories", "categories", s.handleCategories)
	s.route(mux, "/healthz", "healthz", s.handleHealth)
	mux.Handle("/metrics", s.metrics.handler())

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
	})
	s.handler = s.ids.withRequestID(c.Handler(mux))
	return s
}

func (s *Server) route(mux *http.ServeMux, pattern, endpoint string, h http.HandlerFunc) {
	mux.Handle(pattern, s.metrics.instrument(endpoint, h))
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
