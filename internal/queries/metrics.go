package queries

import (
	"movie-analytics/internal/shared/metrics"
)

const (
	labelOutcome = "outcome"

	outcomeSuccess     = "success"
	outcomeFailure     = "failure"
	outcomeUnavailable = "unavailable"
	outcomeCancelled   = "cancelled"
)

var (
	metricBucketQueryTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "bucket_query_total",
		},
		[]string{labelOutcome},
	)

	metricBucketQueryDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "bucket_query_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{labelOutcome},
	)

	metricBucketRowsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "bucket_rows_total",
		},
	)
)
