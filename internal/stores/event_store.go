package stores

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"movie-analytics/internal/models"
)

var (
	ErrBackendUnavailable     = errors.New("storage backend unavailable")
	ErrEventBatchAlreadyExist = errors.New("event batch already exists")
	ErrInvalidTableName       = errors.New("invalid table name")
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// EmitFunc receives the rows of a bucket query one at a time. Returning an error stops the query
// and the error is returned by QueryBucket.
type EmitFunc func(event models.RawEvent) error

// EventStore reads and writes event rows partitioned by (movie, monthly bucket).
//
// Rows live in the partition of the month of their timestamp. A bucket query reads exactly one
// partition and keeps the rows whose timestamp lies within [RangeStart, RangeEnd] of the descriptor,
// both bounds included:
//
//	SELECT event, partner, movie, source, date_time, count
//	FROM events_by_hour
//	WHERE movie = ? AND month = ? AND date_time >= ? AND date_time <= ?
//
// Implementations are safe for concurrent use; one store instance serves every request.
//
//go:generate mockgen -source=event_store.go -destination=./mocks/event_store_mock.go -package=mocks
type EventStore interface {
	QueryBucket(ctx context.Context, descriptor models.QueryDescriptor, emit EmitFunc) error
	// AppendBucket stores the rows of one ingestion batch for one partition. Storing the same
	// batch partition twice either leaves the stored rows unchanged or, where the backend can
	// detect it, returns ErrEventBatchAlreadyExist.
	AppendBucket(ctx context.Context, partition models.EventBatchPartition) error
	Ping(ctx context.Context) error
}

func validateTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
}
