package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// sieveRequests counts range computations by outcome.
	// Labels: outcome (computed, cache_hit, rejected, error)
	sieveRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "primed",
		Subsystem: "sieve",
		Name:      "requests_total",
		Help:      "Total sieve range requests by outcome",
	}, []string{"outcome"})

	// sieveDuration measures the time spent actually sieving (cache hits
	// excluded).
	sieveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "primed",
		Subsystem: "sieve",
		Name:      "compute_duration_seconds",
		Help:      "Sieve computation latency in seconds",
		Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
	})

	// prunedSegments counts cache segments removed by the pruner.
	prunedSegments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "primed",
		Subsystem: "cache",
		Name:      "pruned_segments_total",
		Help:      "Total cached segments removed by the pruner",
	})
)

// Metric outcome label values.
const (
	outcomeComputed = "computed"
	outcomeCacheHit = "cache_hit"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)
