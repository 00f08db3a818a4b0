// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nguyenhoangkha03/shuttlehub/internal/config"
	"github.com/nguyenhoangkha03/shuttlehub/internal/middleware"
)

// The health tier is deliberately permissive so monitoring probes are
// never throttled alongside storefront traffic.
const healthRateLimitPerMinute = 1000

// NewRouter builds the HTTP routing tree.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.API.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(healthRateLimitPerMinute, cfg.API.RateLimitWindow))
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1/products/{productID}/recommendations", func(r chi.Router) {
		r.Use(httprate.LimitByRealIP(cfg.API.RateLimitReqs, cfg.API.RateLimitWindow))
		r.Use(middleware.PrometheusMetrics)
		r.Get("/", h.GetRecommendations)
		r.Get("/debug", h.DebugRecommendations)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
