package stores

import (
	"movie-analytics/internal/shared/metrics"
)

var (
	// metricBreakerState is the circuit breaker state per breaker name: 0 closed, 1 half-open, 2 open.
	metricBreakerState = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "circuit_breaker_state",
		},
		[]string{"breaker"},
	)

	metricBreakerRejectedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "circuit_breaker_rejected_total",
		},
		[]string{"breaker"},
	)
)
