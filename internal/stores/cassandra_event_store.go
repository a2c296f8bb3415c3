package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-analytics/internal/models"

	"github.com/gocql/gocql"
)

// cassandraBatchChunkSize keeps an unlogged batch of event rows well below the server's
// default 50 KiB batch size limit.
const cassandraBatchChunkSize = 100

type CassandraOptions struct {
	Hosts          []string
	Port           int
	Keyspace       string
	Consistency    string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	// CreateSchema creates the keyspace (SimpleStrategy, replication factor 1) when missing.
	CreateSchema bool
}

// NewCassandraSession connects to the cluster. The session is shared by every request and must
// be closed by the caller at shutdown.
func NewCassandraSession(opts CassandraOptions) (*gocql.Session, error) {
	consistency, err := gocql.ParseConsistencyWrapper(opts.Consistency)
	if err != nil {
		return nil, fmt.Errorf("invalid cassandra consistency: %w", err)
	}

	newCluster := func(keyspace string) *gocql.ClusterConfig {
		cluster := gocql.NewCluster(opts.Hosts...)
		cluster.Keyspace = keyspace
		cluster.Consistency = consistency
		if opts.Port > 0 {
			cluster.Port = opts.Port
		}
		if opts.Timeout > 0 {
			cluster.Timeout = opts.Timeout
		}
		if opts.ConnectTimeout > 0 {
			cluster.ConnectTimeout = opts.ConnectTimeout
		}
		return cluster
	}

	if opts.CreateSchema {
		if err := validateTableName(opts.Keyspace); err != nil {
			return nil, err
		}
		bootstrap, err := newCluster("").CreateSession()
		if err != nil {
			return nil, unavailable(err)
		}
		err = bootstrap.Query(fmt.Sprintf(
			`CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}`,
			opts.Keyspace)).Exec()
		bootstrap.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to create keyspace %s: %w", opts.Keyspace, err)
		}
	}

	session, err := newCluster(opts.Keyspace).CreateSession()
	if err != nil {
		return nil, unavailable(err)
	}
	return session, nil
}

// cassandraEventStore reads the (movie, month) partitions of an events table:
//
//	CREATE TABLE events_by_hour (
//	  movie text, month text, date_time timestamp, event text, partner text,
//	  source text, batch_id text, count bigint,
//	  PRIMARY KEY ((movie, month), date_time, event, partner, source, batch_id)
//	)
//
// month holds the bucket string ("2016/1"). batch_id in the clustering key keeps the rows of
// different ingestion batches apart, so a replayed batch overwrites itself instead of adding up.
type cassandraEventStore struct {
	session    *gocql.Session
	table      string
	selectStmt string
	insertStmt string
}

func NewCassandraEventStore(session *gocql.Session, table string) (EventStore, error) {
	if err := validateTableName(table); err != nil {
		return nil, err
	}
	return &cassandraEventStore{
		session: session,
		table:   table,
		selectStmt: fmt.Sprintf(
			`SELECT event, partner, movie, source, date_time, count FROM %s WHERE movie = ? AND month = ? AND date_time >= ? AND date_time <= ?`,
			table),
		insertStmt: fmt.Sprintf(
			`INSERT INTO %s (movie, month, date_time, event, partner, source, batch_id, count) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			table),
	}, nil
}

// EnsureCassandraSchema creates the events table when missing.
func EnsureCassandraSchema(ctx context.Context, session *gocql.Session, table string) error {
	if err := validateTableName(table); err != nil {
		return err
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		movie text,
		month text,
		date_time timestamp,
		event text,
		partner text,
		source text,
		batch_id text,
		count bigint,
		PRIMARY KEY ((movie, month), date_time, event, partner, source, batch_id)
	)`, table)
	if err := session.Query(stmt).WithContext(ctx).Exec(); err != nil {
		return classifyCassandraError(fmt.Errorf("failed to create table %s: %w", table, err))
	}
	return nil
}

func (s *cassandraEventStore) QueryBucket(ctx context.Context, descriptor models.QueryDescriptor, emit EmitFunc) error {
	iter := s.session.Query(s.selectStmt,
		descriptor.Movie,
		descriptor.Bucket.String(),
		descriptor.RangeStart,
		descriptor.RangeEnd,
	).WithContext(ctx).Iter()

	var event models.RawEvent
	for iter.Scan(&event.EventType, &event.Partner, &event.Movie, &event.Source, &event.Timestamp, &event.Count) {
		row := event
		row.Timestamp = row.Timestamp.UTC()
		if err := emit(row); err != nil {
			_ = iter.Close()
			return err
		}
	}
	if err := iter.Close(); err != nil {
		return classifyCassandraError(fmt.Errorf("failed to query bucket %s: %w", descriptor.Bucket, err))
	}
	return nil
}

func (s *cassandraEventStore) AppendBucket(ctx context.Context, partition models.EventBatchPartition) error {
	if len(partition.Events) == 0 {
		return nil
	}

	// All rows share one partition. Chunks stay under batch_size_fail_threshold_in_kb; a failed
	// chunk leaves earlier chunks stored, which a replay of the batch overwrites in place.
	month := partition.Bucket.String()
	for _, chunk := range chunkEvents(partition.Events, cassandraBatchChunkSize) {
		batch := s.session.NewBatch(gocql.UnloggedBatch).WithContext(ctx)
		for _, event := range chunk {
			batch.Query(s.insertStmt,
				partition.Movie, month, event.Timestamp, event.EventType, event.Partner, event.Source,
				partition.BatchID, event.Count)
		}
		if err := s.session.ExecuteBatch(batch); err != nil {
			return classifyCassandraError(fmt.Errorf("failed to append bucket %s: %w", partition.Bucket, err))
		}
	}
	return nil
}

// chunkEvents splits events into consecutive slices of at most size rows.
func chunkEvents(events []models.RawEvent, size int) [][]models.RawEvent {
	chunks := make([][]models.RawEvent, 0, (len(events)+size-1)/size)
	for start := 0; start < len(events); start += size {
		end := min(start+size, len(events))
		chunks = append(chunks, events[start:end:end])
	}
	return chunks
}

func (s *cassandraEventStore) Ping(ctx context.Context) error {
	if err := s.session.Query(`SELECT now() FROM system.local`).WithContext(ctx).Exec(); err != nil {
		return unavailable(err)
	}
	return nil
}

func classifyCassandraError(err error) error {
	var unavailableErr *gocql.RequestErrUnavailable
	switch {
	case errors.Is(err, gocql.ErrNoConnections),
		errors.Is(err, gocql.ErrSessionClosed),
		errors.As(err, &unavailableErr):
		return unavailable(err)
	default:
		return err
	}
}
