package router

import (
	"net/http"

	"aml-screening-engine/internal/interfaces/http/handler"
)

// Router holds all HTTP handlers
type Router struct {
	mux              *http.ServeMux
	screeningHandler *handler.ScreeningHandler
	adminHandler     *handler.AdminHandler
	healthHandler    *handler.HealthHandler
	metricsPath      string
}

// NewRouter creates a new router with all routes configured. metricsPath
// may be empty to disable the metrics endpoint.
func NewRouter(
	screeningHandler *handler.ScreeningHandler,
	adminHandler *handler.AdminHandler,
	healthHandler *handler.HealthHandler,
	metricsPath string,
) *Router {
	r := &Router{
		mux:              http.NewServeMux(),
		screeningHandler: screeningHandler,
		adminHandler:     adminHandler,
		healthHandler:    healthHandler,
		metricsPath:      metricsPath,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Health endpoints
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	r.mux.HandleFunc("GET /ready", r.healthHandler.Ready)
	r.mux.HandleFunc("GET /live", r.healthHandler.Live)

	// Screening endpoints
	r.mux.HandleFunc("POST /api/v1/screening/screen", r.screeningHandler.Screen)
	r.mux.HandleFunc("POST /api/v1/screening/screen/batch", r.screeningHandler.BatchScreen)

	// Verdict lookups
	r.mux.HandleFunc("GET /api/v1/screening/transactions/{id}/verdict", r.screeningHandler.GetVerdictByTransaction)
	r.mux.HandleFunc("GET /api/v1/screening/users/{id}/verdicts", r.screeningHandler.ListVerdictsByUser)

	// Runtime configuration
	r.mux.HandleFunc("GET /api/v1/screening/rules", r.adminHandler.GetRules)
	r.mux.HandleFunc("PUT /api/v1/screening/rules", r.adminHandler.UpdateRules)
	r.mux.HandleFunc("POST /api/v1/screening/countries/reload", r.adminHandler.ReloadCountries)

	// Metrics
	if r.metricsPath != "" {
		r.mux.Handle("GET "+r.metricsPath, handler.MetricsHandler())
	}
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if req.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.mux.ServeHTTP(w, req)
}

// Handler returns the http.Handler
func (r *Router) Handler() http.Handler {
	return r
}
