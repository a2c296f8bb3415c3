package stores

import (
	"context"
	"errors"
	"fmt"

	"movie-analytics/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresOptions struct {
	DSN      string
	MaxConns int32
}

// NewPostgresPool opens the connection pool and checks the server is reachable.
// The pool must be closed by the caller at shutdown.
func NewPostgresPool(ctx context.Context, opts PostgresOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, unavailable(err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, unavailable(err)
	}
	return pool, nil
}

// postgresEventStore mirrors the Cassandra layout in a single table keyed by
// (movie, month, date_time, event, partner, source, batch_id). Inserts of an already stored
// row are ignored, a batch partition whose rows all existed is reported as
// ErrEventBatchAlreadyExist.
type postgresEventStore struct {
	pool       *pgxpool.Pool
	table      string
	selectStmt string
	insertStmt string
}

func NewPostgresEventStore(pool *pgxpool.Pool, table string) (EventStore, error) {
	if err := validateTableName(table); err != nil {
		return nil, err
	}
	return &postgresEventStore{
		pool:  pool,
		table: table,
		selectStmt: fmt.Sprintf(
			`SELECT event, partner, movie, source, date_time, count FROM %s WHERE movie = $1 AND month = $2 AND date_time >= $3 AND date_time <= $4`,
			table),
		insertStmt: fmt.Sprintf(
			`INSERT INTO %s (movie, month, date_time, event, partner, source, batch_id, count) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT DO NOTHING`,
			table),
	}, nil
}

// MigratePostgres creates the events table when missing.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, table string) error {
	if err := validateTableName(table); err != nil {
		return err
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		movie     text        NOT NULL,
		month     text        NOT NULL,
		date_time timestamptz NOT NULL,
		event     text        NOT NULL,
		partner   text        NOT NULL,
		source    text        NOT NULL,
		batch_id  text        NOT NULL,
		count     bigint      NOT NULL CHECK (count >= 0),
		PRIMARY KEY (movie, month, date_time, event, partner, source, batch_id)
	)`, table)
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return classifyPostgresError(fmt.Errorf("failed to create table %s: %w", table, err))
	}
	return nil
}

func (s *postgresEventStore) QueryBucket(ctx context.Context, descriptor models.QueryDescriptor, emit EmitFunc) error {
	rows, err := s.pool.Query(ctx, s.selectStmt,
		descriptor.Movie,
		descriptor.Bucket.String(),
		descriptor.RangeStart,
		descriptor.RangeEnd,
	)
	if err != nil {
		return classifyPostgresError(fmt.Errorf("failed to query bucket %s: %w", descriptor.Bucket, err))
	}
	defer rows.Close()

	for rows.Next() {
		var event models.RawEvent
		if err := rows.Scan(&event.EventType, &event.Partner, &event.Movie, &event.Source, &event.Timestamp, &event.Count); err != nil {
			return fmt.Errorf("failed to scan bucket %s: %w", descriptor.Bucket, err)
		}
		event.Timestamp = event.Timestamp.UTC()
		if err := emit(event); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return classifyPostgresError(fmt.Errorf("failed to read bucket %s: %w", descriptor.Bucket, err))
	}
	return nil
}

func (s *postgresEventStore) AppendBucket(ctx context.Context, partition models.EventBatchPartition) error {
	if len(partition.Events) == 0 {
		return nil
	}

	month := partition.Bucket.String()
	batch := &pgx.Batch{}
	for _, event := range partition.Events {
		batch.Queue(s.insertStmt,
			partition.Movie, month, event.Timestamp, event.EventType, event.Partner, event.Source,
			partition.BatchID, event.Count)
	}

	// the batch runs in one implicit transaction
	results := s.pool.SendBatch(ctx, batch)
	var inserted int64
	for range partition.Events {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return classifyPostgresError(fmt.Errorf("failed to append bucket %s: %w", partition.Bucket, err))
		}
		inserted += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return classifyPostgresError(fmt.Errorf("failed to append bucket %s: %w", partition.Bucket, err))
	}

	if inserted == 0 {
		return ErrEventBatchAlreadyExist
	}
	return nil
}

func (s *postgresEventStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

func classifyPostgresError(err error) error {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return unavailable(err)
	}
	return err
}
