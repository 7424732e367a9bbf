// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/yodataller/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// IsTallerThan answers the height question for name, failing with the
	// taller package error kinds.
	IsTallerThan(ctx context.Context, name string) (model.Outcome, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler *MetricsHandler
	statsHandler   *StatsHandler
	tallerHandler  *TallerHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		metricsHandler: NewMetricsHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		tallerHandler:  NewTallerHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /health_check", instrument(s.healthHandler.HandleHealth, "health_check"))
	mux.HandleFunc("GET /metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", instrument(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /taller/{name}", instrument(s.tallerHandler.HandleTaller, "taller"))
}

// instrument applies the standard middleware chain to a handler.
func instrument(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(next, endpoint))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
