// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests.
	// Labels: method, route (gin full path, "unmatched" for 404s), status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liqma_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration measures handler latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "liqma_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// FeaturedCacheLookups counts featured cache reads.
	// Labels: outcome ("hit", "miss", "stale", "error").
	FeaturedCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liqma_featured_cache_lookups_total",
			Help: "Featured grid cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "liqma_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitions counts breaker state changes.
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liqma_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// RateLimitRejections counts requests refused by a login limiter.
	// Labels: backend ("redis", "local").
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liqma_rate_limit_rejections_total",
			Help: "Requests rejected by the login rate limiter",
		},
		[]string{"backend"},
	)
)
