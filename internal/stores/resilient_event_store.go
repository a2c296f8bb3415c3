package stores

import (
	"context"
	"errors"
	"time"

	"movie-analytics/internal/models"
	"movie-analytics/internal/shared/loggers"

	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerOptions struct {
	Name string
	// MaxRequests is the number of trial requests let through while half-open.
	MaxRequests uint32
	// Interval is the cyclic period after which the closed state clears its counts, 0 never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
}

// resilientEventStore guards an EventStore with a circuit breaker.
//
// While the breaker is open every call fails fast with ErrBackendUnavailable instead of waiting
// on a backend that is already known to be down. Caller cancellations and duplicate batches
// are outcomes of the request, not of the backend, and do not count as failures.
type resilientEventStore struct {
	next    EventStore
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewResilientEventStore(next EventStore, opts BreakerOptions, logger loggers.Logger) EventStore {
	settings := gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: opts.MaxRequests,
		Interval:    opts.Interval,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metricBreakerState.WithLabelValues(name).Set(float64(to))
			logger.Warn().
				Str(loggers.FieldBreaker, name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("event store circuit breaker state changed")
		},
		IsSuccessful: isBreakerSuccess,
	}
	metricBreakerState.WithLabelValues(opts.Name).Set(float64(gobreaker.StateClosed))

	return &resilientEventStore{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (s *resilientEventStore) QueryBucket(ctx context.Context, descriptor models.QueryDescriptor, emit EmitFunc) error {
	return s.execute(func() error {
		return s.next.QueryBucket(ctx, descriptor, emit)
	})
}

func (s *resilientEventStore) AppendBucket(ctx context.Context, partition models.EventBatchPartition) error {
	return s.execute(func() error {
		return s.next.AppendBucket(ctx, partition)
	})
}

func (s *resilientEventStore) Ping(ctx context.Context) error {
	return s.execute(func() error {
		return s.next.Ping(ctx)
	})
}

func (s *resilientEventStore) execute(fn func() error) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metricBreakerRejectedTotal.WithLabelValues(s.breaker.Name()).Inc()
		return unavailable(err)
	}
	return err
}

func isBreakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrEventBatchAlreadyExist)
}
