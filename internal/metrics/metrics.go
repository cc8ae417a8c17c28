// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

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
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
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

	// Name Resolution Metrics
	SearchQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_queries_total",
			Help: "Total number of fuzzy title resolution queries",
		},
	)

	SearchEmptyInputTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_empty_input_total",
			Help: "Total number of queries rejected for empty or fully sanitized input",
		},
	)

	SearchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_candidates",
			Help:    "Number of candidates returned per resolution query",
			Buckets: []float64{0, 1, 2, 4, 8, 12},
		},
	)

	// Recommendation Pipeline Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"recipe", "outcome"}, // outcome: "ok", "empty", "not_found", "invalid"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"recipe"},
	)

	RecommendationRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_rows",
			Help:    "Number of rows in final recommendation responses",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 25},
		},
	)

	// Candidate Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "candidates"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Catalog Metrics
	CatalogGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_games",
			Help: "Number of games in the loaded catalog snapshot",
		},
	)

	CatalogLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_load_duration_seconds",
			Help: "Time taken to load the catalog at startup",
		},
	)

	// Dataset Download Metrics
	DownloadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataset_download_bytes_total",
			Help: "Total bytes downloaded for dataset artifacts",
		},
	)

	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_downloads_total",
			Help: "Total number of dataset artifact downloads",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSearch records one resolution query and its candidate count.
func RecordSearch(candidates int, emptyInput bool) {
	SearchQueriesTotal.Inc()
	if emptyInput {
		SearchEmptyInputTotal.Inc()
		return
	}
	SearchCandidates.Observe(float64(candidates))
}

// RecordRecommendation records a completed recommendation request.
func RecordRecommendation(recipe, outcome string, rows int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(recipe, outcome).Inc()
	RecommendationDuration.WithLabelValues(recipe).Observe(duration.Seconds())
	if outcome == "ok" || outcome == "empty" {
		RecommendationRows.Observe(float64(rows))
	}
}

// RecordCacheHit records a cache hit for the given cache type.
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCatalogLoad records the loaded catalog size and load time.
func RecordCatalogLoad(games int, duration time.Duration) {
	CatalogGames.Set(float64(games))
	CatalogLoadDuration.Set(duration.Seconds())
}

// RecordDownload records a dataset download outcome.
func RecordDownload(result string, bytes int64) {
	DownloadsTotal.WithLabelValues(result).Inc()
	if bytes > 0 {
		DownloadBytesTotal.Add(float64(bytes))
	}
}
