// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

// Package api provides the HTTP surface of the recommendation service:
// routing, parameter validation, the response envelope and health
// endpoints.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nguyenhoangkha03/shuttlehub/internal/config"
	"github.com/nguyenhoangkha03/shuttlehub/internal/logging"
	"github.com/nguyenhoangkha03/shuttlehub/internal/metrics"
	"github.com/nguyenhoangkha03/shuttlehub/internal/recommend"
)

// Recommender is the engine surface the handlers depend on.
type Recommender interface {
	RecommendUnified(ctx context.Context, productID uint, limit int) (*recommend.UnifiedResponse, error)
	RecommendTwoList(ctx context.Context, productID uint, relatedLimit, likeLimit int) (*recommend.TwoListResponse, error)
	Diagnose(ctx context.Context, productID uint) (*recommend.Diagnostics, error)
}

// Pinger reports data-layer liveness for the readiness probe.
type Pinger interface {
	Ping() error
}

// Handler bundles the HTTP handlers and their dependencies.
type Handler struct {
	engine   Recommender
	db       Pinger
	cfg      *config.Config
	validate *validator.Validate
	started  time.Time
}

// NewHandler creates the API handler set.
func NewHandler(engine Recommender, db Pinger, cfg *config.Config) *Handler {
	return &Handler{
		engine:   engine,
		db:       db,
		cfg:      cfg,
		validate: validator.New(),
		started:  time.Now(),
	}
}

// recommendationQuery holds the parsed and validated query parameters
// of the recommendations endpoint.
type recommendationQuery struct {
	Mode         string `validate:"omitempty,oneof=v1 v2"`
	Limit        int    `validate:"omitempty,min=1,max=100"`
	RelatedLimit int    `validate:"omitempty,min=1,max=100"`
	LikeLimit    int    `validate:"omitempty,min=1,max=100"`
}

// parseRecommendationQuery extracts and validates the query parameters.
// Absent parameters stay zero and fall back to engine defaults.
func (h *Handler) parseRecommendationQuery(r *http.Request) (recommendationQuery, error) {
	q := recommendationQuery{Mode: r.URL.Query().Get("mode")}

	intParam := func(name string) (int, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return n, nil
	}

	var err error
	if q.Limit, err = intParam("limit"); err != nil {
		return q, err
	}
	if q.RelatedLimit, err = intParam("relatedLimit"); err != nil {
		return q, err
	}
	if q.LikeLimit, err = intParam("likeLimit"); err != nil {
		return q, err
	}

	if err := h.validate.Struct(q); err != nil {
		return q, fmt.Errorf("invalid query parameters: %w", err)
	}
	return q, nil
}

// parseProductID extracts the productID path parameter.
func parseProductID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("productID must be a positive integer")
	}
	return uint(id), nil
}

// GetRecommendations serves both recommendation modes. mode=v1 (the
// default) returns the unified list; mode=v2 returns the two-list
// response.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	productID, err := parseProductID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	q, err := h.parseRecommendationQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Recommend.RequestTimeout)
	defer cancel()

	switch q.Mode {
	case "v2":
		h.serveTwoList(ctx, w, productID, q, started)
	default:
		h.serveUnified(ctx, w, productID, q, started)
	}
}

func (h *Handler) serveUnified(ctx context.Context, w http.ResponseWriter, productID uint, q recommendationQuery, started time.Time) {
	resp, err := h.engine.RecommendUnified(ctx, productID, q.Limit)
	if err != nil {
		h.writeEngineError(ctx, w, "v1", productID, started, err)
		return
	}

	metrics.RecordRecommendation("v1", "ok", time.Since(started))
	metrics.RecordResultCount("unified", len(resp.Items))
	metrics.RecordCacheLookup(resp.Metadata.CacheHit)

	writeJSON(w, http.StatusOK, resp, started, resp.Metadata.CacheHit)
}

func (h *Handler) serveTwoList(ctx context.Context, w http.ResponseWriter, productID uint, q recommendationQuery, started time.Time) {
	resp, err := h.engine.RecommendTwoList(ctx, productID, q.RelatedLimit, q.LikeLimit)
	if err != nil {
		h.writeEngineError(ctx, w, "v2", productID, started, err)
		return
	}

	metrics.RecordRecommendation("v2", "ok", time.Since(started))
	metrics.RecordResultCount("related", len(resp.RelatedProducts))
	metrics.RecordResultCount("you_might_like", len(resp.YouMightLike))
	metrics.RecordCacheLookup(resp.Metadata.CacheHit)

	writeJSON(w, http.StatusOK, resp, started, resp.Metadata.CacheHit)
}

// writeEngineError maps engine failures to the wire: a missing source
// product is the only distinguished case, everything else is a generic
// server error with the detail kept in the logs.
func (h *Handler) writeEngineError(ctx context.Context, w http.ResponseWriter, mode string, productID uint, started time.Time, err error) {
	if errors.Is(err, recommend.ErrProductNotFound) {
		metrics.RecordRecommendation(mode, "not_found", time.Since(started))
		writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", fmt.Sprintf("product %d not found", productID))
		return
	}

	metrics.RecordRecommendation(mode, "error", time.Since(started))
	logger := logging.Ctx(ctx)
	logger.Error().
		Err(err).
		Uint("product_id", productID).
		Str("mode", mode).
		Msg("Recommendation computation failed")
	writeError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "failed to compute recommendations")
}

// DebugRecommendations exposes the raw per-generator candidates and the
// compatibility tables for one product, unmerged and unranked. Meant
// for tuning, not for storefront traffic.
func (h *Handler) DebugRecommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	productID, err := parseProductID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Recommend.RequestTimeout)
	defer cancel()

	diag, err := h.engine.Diagnose(ctx, productID)
	if err != nil {
		h.writeEngineError(ctx, w, "debug", productID, started, err)
		return
	}

	writeJSON(w, http.StatusOK, diag, started, false)
}

// Health reports overall service health including the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	status := "healthy"
	httpStatus := http.StatusOK
	dbStatus := "up"
	if err := h.db.Ping(); err != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
		dbStatus = "down"
		logging.Err(err).Msg("Health check: database ping failed")
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":         status,
		"database":       dbStatus,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	}, started, false)
}

// HealthLive is the liveness probe: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "alive"}, time.Now(), false)
}

// HealthReady is the readiness probe: the service can reach its
// database.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	if err := h.db.Ping(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "NOT_READY", "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"}, started, false)
}

// MethodNotAllowed is the fallback for wrong HTTP methods on known
// routes.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", fmt.Sprintf("method %s not allowed", r.Method))
}

// NotFound is the fallback for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
}
