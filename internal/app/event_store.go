package app

import (
	"context"
	"fmt"
	"time"

	"movie-analytics/internal/shared/configs"
	"movie-analytics/internal/shared/filestorages"
	"movie-analytics/internal/shared/loggers"
	"movie-analytics/internal/stores"
)

// newEventStore builds the configured backend and wraps it with the circuit breaker.
// The returned close func releases the backend handles.
func newEventStore(backend configs.BackendConfig, logger loggers.Logger) (stores.EventStore, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), backendSetupTimeout)
	defer cancel()

	var (
		eventStore stores.EventStore
		closeFn    = func() {}
	)

	switch backend.Driver {
	case configs.DriverFile:
		fileStorage, err := filestorages.NewFileStorage(backend.File.RootDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		eventStore = stores.NewFileEventStore(fileStorage)

	case configs.DriverCassandra:
		cass := backend.Cassandra
		session, err := stores.NewCassandraSession(stores.CassandraOptions{
			Hosts:          cass.Hosts,
			Port:           cass.Port,
			Keyspace:       cass.Keyspace,
			Consistency:    cass.Consistency,
			Timeout:        time.Duration(cass.TimeoutMs) * time.Millisecond,
			ConnectTimeout: time.Duration(cass.ConnectTimeoutMs) * time.Millisecond,
			CreateSchema:   cass.CreateSchema,
		})
		if err != nil {
			return nil, nil, err
		}
		if cass.CreateSchema {
			if err := stores.EnsureCassandraSchema(ctx, session, cass.Table); err != nil {
				session.Close()
				return nil, nil, err
			}
		}
		eventStore, err = stores.NewCassandraEventStore(session, cass.Table)
		if err != nil {
			session.Close()
			return nil, nil, err
		}
		closeFn = session.Close

	case configs.DriverPostgres:
		pg := backend.Postgres
		pool, err := stores.NewPostgresPool(ctx, stores.PostgresOptions{DSN: pg.DSN, MaxConns: pg.MaxConns})
		if err != nil {
			return nil, nil, err
		}
		if pg.Migrate {
			if err := stores.MigratePostgres(ctx, pool, pg.Table); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		eventStore, err = stores.NewPostgresEventStore(pool, pg.Table)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		closeFn = pool.Close

	default:
		return nil, nil, fmt.Errorf("unknown backend driver %q", backend.Driver)
	}

	if backend.Breaker.Enabled {
		eventStore = stores.NewResilientEventStore(eventStore, stores.BreakerOptions{
			Name:             backend.Driver,
			MaxRequests:      backend.Breaker.MaxRequests,
			Interval:         time.Duration(backend.Breaker.Interval) * time.Second,
			Timeout:          time.Duration(backend.Breaker.OpenTimeout) * time.Second,
			FailureThreshold: backend.Breaker.FailureThreshold,
		}, logger)
	}

	logger.Info().Bool(loggers.FieldBreaker, backend.Breaker.Enabled).Msg("event store ready")

	return eventStore, closeFn, nil
}
