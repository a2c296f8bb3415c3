package aggregators

import (
	"movie-analytics/internal/shared/metrics"
)

var (
	// metricMovieInformationTotal counts movie information requests by result, error_code is empty on success.
	metricMovieInformationTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "movie_information_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricBucketsPerRequest is the number of monthly buckets a request range was split into.
	metricBucketsPerRequest = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "buckets_per_request",
			Buckets:   []float64{1, 2, 3, 6, 12, 24, 60, 120},
		},
		nil,
	)
)
