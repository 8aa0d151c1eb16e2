// Package api provides the HTTP server for ritual.
// It exposes the gamification REST API consumed by the CLI and any
// local dashboard.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ritual-sh/ritual/internal/app/achievement"
	"github.com/ritual-sh/ritual/internal/app/freeze"
	"github.com/ritual-sh/ritual/internal/app/level"
	"github.com/ritual-sh/ritual/internal/app/points"
	"github.com/ritual-sh/ritual/internal/app/streak"
	"github.com/ritual-sh/ritual/internal/health"
	"github.com/ritual-sh/ritual/internal/infra/metrics"
)

// Server is the ritual HTTP API server.
type Server struct {
	points         *points.Calculator
	streaks        *streak.Service
	levels         *level.Service
	achievements   *achievement.Service
	freezes        *freeze.Service
	health         *health.Checker
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server over the app services.
func NewServer(
	pts *points.Calculator,
	streaks *streak.Service,
	levels *level.Service,
	achievements *achievement.Service,
	freezes *freeze.Service,
	version string,
) *Server {
	return &Server{
		points:       pts,
		streaks:      streaks,
		levels:       levels,
		achievements: achievements,
		freezes:      freezes,
		version:      version,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the periodic health checker to /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)
	r.Use(requestMetrics)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.health != nil && !s.health.IsHealthy() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "degraded",
				"checks": s.health.Statuses(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ritual is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	// Gamification endpoints
	r.Route("/api/gamification", func(r chi.Router) {
		r.Route("/points", func(r chi.Router) {
			r.Get("/", s.handleDailyPoints)
			r.Get("/weekly", s.handleWeeklyPoints)
			r.Get("/monthly", s.handleMonthlyPoints)
			r.Get("/lifetime", s.handleLifetimePoints)
		})
		r.Get("/streaks", s.handleStreaks)
		r.Route("/level", func(r chi.Router) {
			r.Get("/", s.handleLevel)
			r.Post("/xp", s.handleAddXP)
		})
		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", s.handleAchievements)
			r.Get("/recent", s.handleRecentAchievements)
			r.Post("/{key}/unlock", s.handleUnlockAchievement)
		})
		r.Route("/freeze", func(r chi.Router) {
			r.Get("/", s.handleFreezeStatus)
			r.Post("/earn", s.handleFreezeEarn)
			r.Post("/use", s.handleFreezeUse)
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestMetrics records per-route latency labeled by the matched chi
// pattern, not the raw path, so label cardinality stays bounded.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.RequestDuration.WithLabelValues(
			route, strconv.Itoa(ww.Status()),
		).Observe(time.Since(start).Seconds())
	})
}
