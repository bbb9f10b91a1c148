// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Engine Metrics
	RecommendationsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_recommendations_built_total",
			Help: "Total recommendations returned, labeled by type",
		},
		[]string{"type"}, // "next_topic", "review", "challenge", "remedial"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_recommendation_duration_seconds",
			Help:    "Duration of recommendation building in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PathsBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_paths_built_total",
			Help: "Total learning paths built",
		},
	)

	PathBuildFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_path_build_failures_total",
			Help: "Total learning path builds rejected as unsatisfiable",
		},
	)

	ProgressEventsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_progress_events_total",
			Help: "Total progress events applied, labeled by resulting status",
		},
		[]string{"status"},
	)

	StyleUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_style_updates_total",
			Help: "Total style profile updates, labeled by source",
		},
		[]string{"source"}, // "assessment", "history"
	)

	PredictionsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_predictions_total",
			Help: "Total performance predictions served",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "entity"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Total store operation errors",
		},
		[]string{"operation", "entity"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one returned recommendation by type.
func RecordRecommendation(recType string) {
	RecommendationsBuilt.WithLabelValues(recType).Inc()
}

// RecordPathBuild records a learning path build attempt.
func RecordPathBuild(err error) {
	if err != nil {
		PathBuildFailures.Inc()
		return
	}
	PathsBuilt.Inc()
}

// RecordProgressEvent records an applied progress event.
func RecordProgressEvent(status string) {
	ProgressEventsApplied.WithLabelValues(status).Inc()
}

// RecordStyleUpdate records a style profile update by source.
func RecordStyleUpdate(source string) {
	StyleUpdates.WithLabelValues(source).Inc()
}

// RecordStoreOperation records a store operation metric.
func RecordStoreOperation(operation, entity string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation, entity).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation, entity).Inc()
	}
}
