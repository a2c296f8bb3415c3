package queries

import (
	"context"
	"errors"
	"time"

	"movie-analytics/internal/models"
	"movie-analytics/internal/shared/loggers"
	"movie-analytics/internal/stores"
)

const (
	DefaultStreamBuffer = 256
)

type ExecutorOptions struct {
	// StreamBuffer is the capacity of the merged row channel.
	StreamBuffer int
	// MaxInFlight bounds the concurrently running bucket queries of one request, 0 is unbounded.
	MaxInFlight int
}

// QueryExecutor runs the bucket queries of a request concurrently and merges their rows.
//
// Every descriptor gets its own goroutine, no query waits on a sibling. Rows are published to the
// returned stream as the backend yields them, so aggregation overlaps with the remaining queries.
// The stream closes once every query has finished; when one or more queries failed Err reports
// the first failure as a *QueryFailureError. Cancelling ctx stops all queries still running.
//
//go:generate mockgen -source=query_executor.go -destination=./mocks/query_executor_mock.go -package=mocks
type QueryExecutor interface {
	Execute(ctx context.Context, descriptors []models.QueryDescriptor) EventStream
}

type queryExecutor struct {
	store stores.EventStore
	opts  ExecutorOptions
}

func NewQueryExecutor(store stores.EventStore, opts ExecutorOptions) QueryExecutor {
	if opts.StreamBuffer <= 0 {
		opts.StreamBuffer = DefaultStreamBuffer
	}
	if opts.MaxInFlight < 0 {
		opts.MaxInFlight = 0
	}
	return &queryExecutor{store: store, opts: opts}
}

func (e *queryExecutor) Execute(ctx context.Context, descriptors []models.QueryDescriptor) EventStream {
	merger := newEventMerger(e.opts.StreamBuffer, e.opts.MaxInFlight)

	// submission runs apart from the caller so a producer limit never blocks the consumer
	go func() {
		for _, descriptor := range descriptors {
			merger.Go(ctx, descriptor.Bucket, func(emit func(models.RawEvent) error) error {
				return e.queryBucket(ctx, descriptor, emit)
			})
		}
		merger.Seal()
	}()

	return merger
}

func (e *queryExecutor) queryBucket(ctx context.Context, descriptor models.QueryDescriptor, emit func(models.RawEvent) error) error {
	logger := loggers.Ctx(ctx)
	start := time.Now()
	rows := 0

	err := e.store.QueryBucket(ctx, descriptor, func(event models.RawEvent) error {
		rows++
		return emit(event)
	})

	outcome := outcomeOf(err)
	metricBucketQueryTotal.WithLabelValues(outcome).Inc()
	metricBucketQueryDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	metricBucketRowsTotal.Add(float64(rows))

	if err != nil {
		logger.Warn().Err(err).
			Str(loggers.FieldMovie, descriptor.Movie).
			Str(loggers.FieldBucket, descriptor.Bucket.String()).
			Int(loggers.FieldRowCount, rows).
			Msg("bucket query failed")
		return &QueryFailureError{Bucket: descriptor.Bucket, Cause: err}
	}

	logger.Debug().
		Str(loggers.FieldMovie, descriptor.Movie).
		Str(loggers.FieldBucket, descriptor.Bucket.String()).
		Int(loggers.FieldRowCount, rows).
		Dur(loggers.FieldDuration, time.Since(start)).
		Msg("bucket query completed")
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCancelled
	case errors.Is(err, stores.ErrBackendUnavailable):
		return outcomeUnavailable
	default:
		return outcomeFailure
	}
}
