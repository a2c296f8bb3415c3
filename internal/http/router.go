package http

import (
	"net/http"

	"movie-analytics/internal/aggregators"
	"movie-analytics/internal/ingestors"
	"movie-analytics/internal/shared/loggers"
	"movie-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

type RouterOptions struct {
	RateLimit RateLimitOptions
}

// NewRouter creates and configures the HTTP router.
func NewRouter(
	movieService aggregators.MovieInformationService,
	ingestionService ingestors.IngestionService,
	pinger Pinger,
	httpLogger loggers.Logger,
	opts RouterOptions,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	movieInformationHandler := NewMovieInformationHandler(movieService)
	healthHandler := NewHealthHandler(pinger)

	router.Route("/v1", func(r chi.Router) {
		if opts.RateLimit.Enabled {
			r.Use(mwRateLimit(opts.RateLimit))
		}
		r.Get("/movie", errorHandlingAdapter(movieInformationHandler))
		// ingestion is optional, a nil service leaves the store read-only
		if ingestionService != nil {
			r.Post("/events", errorHandlingAdapter(NewIngestEventHandler(ingestionService)))
		}
	})
	router.Get("/health", errorHandlingAdapter(healthHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
