package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"movie-analytics/internal/aggregators"
	internalhttp "movie-analytics/internal/http"
	"movie-analytics/internal/ingestors"
	"movie-analytics/internal/planners"
	"movie-analytics/internal/queries"
	"movie-analytics/internal/shared/configs"
	"movie-analytics/internal/shared/loggers"
)

const backendSetupTimeout = 30 * time.Second

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	// closeBackend releases the session or pool shared by every request
	closeBackend func()
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "movie-analytics").
		Logger()

	// Initialize event store
	storeLogger := appLogger.With().
		Str(loggers.FieldComponent, "store").
		Str(loggers.FieldBackend, config.Backend.Driver).
		Logger()
	eventStore, closeBackend, err := newEventStore(config.Backend, storeLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event store: %w", err)
	}

	// Initialize movie information service
	planner := planners.NewBucketPlanner()
	executor := queries.NewQueryExecutor(eventStore, queries.ExecutorOptions{
		StreamBuffer: config.Query.StreamBuffer,
		MaxInFlight:  config.Query.MaxInFlight,
	})
	aggregator := aggregators.NewEventAggregator()
	queryTimeout := time.Duration(config.Query.Timeout) * time.Second
	movieService := aggregators.NewMovieInformationService(planner, executor, aggregator, queryTimeout)

	// Initialize ingestion service
	var ingestionService ingestors.IngestionService
	if config.Ingestion.Enabled {
		ingestionService = ingestors.NewIngestionService(ingestors.NewEventPartitioner(), eventStore)
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(movieService, ingestionService, eventStore, httpLogger, internalhttp.RouterOptions{
		RateLimit: internalhttp.RateLimitOptions{
			Enabled:  config.RateLimit.Enabled,
			Requests: config.RateLimit.Requests,
			Window:   time.Duration(config.RateLimit.Window) * time.Second,
		},
	})

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:       config,
		appLogger:    appLogger,
		server:       server,
		closeBackend: closeBackend,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting movie-analytics service on port %d (log_level=%s, backend=%s, query_timeout=%ds)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Backend.Driver,
			app.config.Query.Timeout)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server, in-flight requests finish first
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Release backend handles
	if app.closeBackend != nil {
		app.closeBackend()
		app.appLogger.Info().Msg("Event store closed")
	}

	return nil
}
