// Package http exposes the assessment results plus health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guaibalabs/weather-risk/internal/domain"
	"github.com/guaibalabs/weather-risk/internal/store"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// BatchSource yields the most recent completed batch.
type BatchSource interface {
	Latest() (store.Batch, error)
}

// Server exposes the city results API and the operational endpoints.
type Server struct {
	httpServer *http.Server
	batches    BatchSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /v1/cities and /v1/cities/filter routes.
func NewServer(addr string, ready ReadinessChecker, batches BatchSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		batches: batches,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/cities", s.handleCities)
	mux.HandleFunc("GET /v1/cities/filter", s.handleCitiesFilter)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleCities(w http.ResponseWriter, _ *http.Request) {
	batch, err := s.batches.Latest()
	if err != nil {
		s.writeNoBatch(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (s *Server) handleCitiesFilter(w http.ResponseWriter, r *http.Request) {
	batch, err := s.batches.Latest()
	if err != nil {
		s.writeNoBatch(w, err)
		return
	}

	riskLevel := r.URL.Query().Get("risk_level")
	city := r.URL.Query().Get("city")

	filtered := domain.Filter(batch.Results, riskLevel, city)
	if len(filtered) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no cities match the criteria"})
		return
	}

	writeJSON(w, http.StatusOK, store.Batch{Results: filtered, CompletedAt: batch.CompletedAt})
}

func (s *Server) writeNoBatch(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrEmpty) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	s.logger.Error("read latest batch", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
