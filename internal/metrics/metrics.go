// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package metrics provides Prometheus instrumentation for:
//   - Provider adapter calls and outcomes
//   - Fallback chain behavior
//   - Cache and rate-limit store efficiency
//   - Upstream circuit breaker state
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Provider metrics

	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total outbound provider adapter calls by outcome",
		},
		[]string{"provider", "outcome"}, // outcome: success, empty, error, rate_limited, validation_failed
	)

	ProviderUnavailable = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_unavailable_total",
			Help: "Times an adapter reported itself unavailable during chain traversal",
		},
		[]string{"provider"},
	)

	// Orchestration metrics

	OrchestrationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orchestration_duration_seconds",
			Help:    "End-to-end orchestration latency by use case",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	ChainFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_fallbacks_total",
			Help: "Orchestrations answered by a non-primary provider",
		},
		[]string{"kind", "provider"},
	)

	ChainExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_exhausted_total",
			Help: "Orchestrations where every adapter in the chain failed",
		},
		[]string{"kind"},
	)

	// Store metrics

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Provider response cache hits",
		},
		[]string{"provider"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Provider response cache misses",
		},
		[]string{"provider"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Outbound calls rejected by the shared rate-limit counter",
		},
		[]string{"provider"},
	)

	// Circuit breaker metrics

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Enrichment metrics

	EnrichmentLookupFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_lookup_failures_total",
			Help: "Per-item catalog lookups that failed during enrichment (tolerated)",
		},
		[]string{"stage"}, // stage: resolve, watch_providers
	)
)
