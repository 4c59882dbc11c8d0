// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal tracks requests by method, route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)
)

// Domain metrics
var (
	// AssessmentsCreatedTotal counts successfully created assessments.
	AssessmentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessments_created_total",
			Help: "Total GSD assessments created",
		},
	)

	// DatasetResetsTotal counts full dataset resets.
	DatasetResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataset_resets_total",
			Help: "Total dataset resets",
		},
	)
)

// Redis metrics
var (
	// RedisOpsTotal tracks Redis commands by operation and outcome.
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by command and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis command latency in seconds.
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors counts failed connection attempts to Redis.
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// RedisBreakerState reports the Redis circuit breaker state
	// (0 closed, 1 half-open, 2 open).
	RedisBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "redis_circuit_breaker_state",
			Help: "Current Redis circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// RedisBreakerTransitions counts circuit breaker state changes by target state.
	RedisBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_circuit_breaker_transitions_total",
			Help: "Total Redis circuit breaker state transitions by new state",
		},
		[]string{"state"},
	)
)
