// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rating and acceptance metrics
var (
	// RatingsTotal tracks applied ratings by target kind and rating value
	RatingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_applied_total",
			Help: "Total ratings applied by target kind and rating value",
		},
		[]string{"target_kind", "rating"},
	)

	// AcceptanceTransitionsTotal tracks acceptance state machine transitions
	AcceptanceTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acceptance_transitions_total",
			Help: "Acceptance state machine transitions (accept/unaccept)",
		},
		[]string{"transition"},
	)

	// ReputationEventsTotal tracks reputation adjustments by event name
	ReputationEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reputation_events_total",
			Help: "Reputation adjustments by event name",
		},
		[]string{"event"},
	)
)

// Database metrics
var (
	// DBQueryDuration tracks query latency grouped by statement verb
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks query errors grouped by statement verb
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database query errors",
		},
		[]string{"query"},
	)

	// TxRetriesTotal tracks transaction retries after serialization conflicts
	TxRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tx_retries_total",
			Help: "Transaction retries after serialization conflicts",
		},
		[]string{"operation"},
	)
)

// Redis metrics
var (
	// RedisOpsTotal tracks Redis commands by name and outcome
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_ops_total",
			Help: "Total Redis operations by command and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis command latency
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_op_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors counts failed Redis dials
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)
)
