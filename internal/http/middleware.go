package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"movie-analytics/internal/shared/loggers"
	"movie-analytics/internal/shared/svcerrors"
	"movie-analytics/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// RateLimitOptions bounds requests per client IP on the /v1 routes.
type RateLimitOptions struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestCompletionLog)
	router.Use(mwRecoverer)
}

// mwAppResponseWriter initializes the appResponseWriter once and passes it through the middleware chain.
func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appWriter := newAppResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(appWriter, r)
	})
}

// mwPrometheus records request count and duration labelled by route pattern, not raw path.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		path := routePattern(r)
		status := strconv.Itoa(responseStatus(w))
		errorCode := responseErrorCode(w)

		metricHTTPRequestsTotal.WithLabelValues(r.Method, path, status, errorCode).Inc()
		metricHTTPRequestDuration.WithLabelValues(r.Method, path, status, errorCode).
			Observe(time.Since(start).Seconds())
	})
}

// mwRequestID extracts or generates a request ID and attaches a request-scoped logger to context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := requestID(r)
			if requestID == "" {
				requestID = ulid.NewULID()
				setRequestID(r, requestID)
			}
			w.Header().Set(headerRequestID, requestID)

			ctxWithReqLogger := httpLogger.With().
				Str(loggers.FieldRequestID, requestID).
				Logger().WithContext(r.Context())

			next.ServeHTTP(w, r.WithContext(ctxWithReqLogger))
		})
	}
}

// mwRequestCompletionLog logs one line per finished request.
func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			loggers.Ctx(r.Context()).Info().
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Int(loggers.FieldHttpStatus, responseStatus(w)).
				Int64(loggers.FieldDuration, time.Since(start).Milliseconds()).
				Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

// mwRecoverer provides panic recovery middleware.
func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				loggers.Ctx(r.Context()).Error().
					Bytes(loggers.FieldErrorStack, debug.Stack()).
					Msgf("http panic recovered: %v", p)

				var panicErr error
				if err, ok := p.(error); ok {
					panicErr = err
				} else {
					panicErr = fmt.Errorf("%v", p)
				}

				writeErrorResponse(w, r, svcerrors.NewInternalErrorPanic(panicErr))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// mwRateLimit limits requests per client IP and answers with a JSON error once the window is exhausted.
func mwRateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	return httprate.Limit(
		opts.Requests,
		opts.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metricHTTPRateLimitedTotal.WithLabelValues(routePattern(r)).Inc()
			loggers.Ctx(r.Context()).Warn().
				Str(loggers.FieldHttpPath, r.URL.Path).
				Msg("rate limit exceeded")

			writeErrorResponse(w, r, svcerrors.NewRateLimitedError())
		}),
	)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
