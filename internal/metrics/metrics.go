// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

// Package metrics provides Prometheus metrics collection and export.
// Metrics are exposed at the /metrics endpoint in Prometheus text
// format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shuttlehub_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shuttlehub_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shuttlehub_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Recommendation engine metrics.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shuttlehub_recommendations_total",
			Help: "Total number of recommendation computations",
		},
		[]string{"mode", "outcome"}, // mode: "v1", "v2"; outcome: "ok", "not_found", "error"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shuttlehub_recommendation_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shuttlehub_recommendation_results",
			Help:    "Number of items returned per recommendation list",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		},
		[]string{"list"}, // "unified", "related", "you_might_like"
	)

	// Result cache metrics.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shuttlehub_recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shuttlehub_recommendation_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Database metrics.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shuttlehub_db_query_duration_seconds",
			Help:    "Duration of catalog database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shuttlehub_db_query_errors_total",
			Help: "Total number of catalog database query errors",
		},
		[]string{"query"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records one recommendation computation.
func RecordRecommendation(mode, outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == "ok" {
		RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	}
}

// RecordResultCount records the size of one returned recommendation
// list.
func RecordResultCount(list string, n int) {
	RecommendationResults.WithLabelValues(list).Observe(float64(n))
}

// RecordCacheLookup records a recommendation cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordDBQuery records a catalog query metric.
func RecordDBQuery(query string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(query).Inc()
	}
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
