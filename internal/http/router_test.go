package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	aggregatormocks "movie-analytics/internal/aggregators/mocks"
	"movie-analytics/internal/ingestors"
	ingestormocks "movie-analytics/internal/ingestors/mocks"
	"movie-analytics/internal/models"
	"movie-analytics/internal/shared/loggers"
	"movie-analytics/internal/shared/svcerrors"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerFixture struct {
	router           http.Handler
	movieService     *aggregatormocks.MockMovieInformationService
	ingestionService *ingestormocks.MockIngestionService
}

func newRouterFixture(t *testing.T, opts RouterOptions) *routerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	logger, err := loggers.New("info")
	require.NoError(t, err)

	f := &routerFixture{
		movieService:     aggregatormocks.NewMockMovieInformationService(ctrl),
		ingestionService: ingestormocks.NewMockIngestionService(ctrl),
	}
	pinger := pingerFunc(func(ctx context.Context) error { return nil })
	f.router = NewRouter(f.movieService, f.ingestionService, pinger, logger, opts)
	return f
}

func TestRouter_MovieInformation(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, RouterOptions{})
	f.movieService.EXPECT().GetMovieInformation(gomock.Any(), gomock.Any()).
		Return([]models.EventInfo{{Name: "play", Partner: "netflix", Movie: "Inception", Count: 7}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/movie?name=Inception&startDate=2016-01-01+00:00&endDate=2016-03-31+23:59", nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(headerRequestID))
}

func TestRouter_ServiceErrorsBecomeJSONBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "validation",
			err:            svcerrors.NewInvalidArgumentError("MOV_1000", "name is required", nil),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MOV_1000",
		},
		{
			name:           "backend unavailable",
			err:            svcerrors.NewUnavailableError("MOV_9000", "storage backend unavailable", nil),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "MOV_9000",
		},
		{
			name:           "query failed",
			err:            svcerrors.NewInternalError("MOV_9001", assert.AnError),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "MOV_9001",
		},
		{
			name:           "timeout",
			err:            svcerrors.NewTimeoutError("MOV_9002", "query timed out", nil),
			expectedStatus: http.StatusGatewayTimeout,
			expectedCode:   "MOV_9002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t, RouterOptions{})
			f.movieService.EXPECT().GetMovieInformation(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/v1/movie?name=Inception", nil)
			rr := httptest.NewRecorder()
			f.router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.Equal(t, tt.expectedCode, errorResponse.ErrorCode)
			assert.Equal(t, rr.Header().Get(headerRequestID), errorResponse.RequestID)
		})
	}
}

func TestRouter_IngestEvents(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, RouterOptions{})
	f.ingestionService.EXPECT().IngestBatch(gomock.Any(), "key1", "application/json", gomock.Any()).Return(&ingestors.IngestResult{BatchID: "key1"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`[]`))
	req.Header.Set(headerIdempotencyKey, "key1")
	req.Header.Set(headerContentType, "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestRouter_IngestionDisabled(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	logger, err := loggers.New("info")
	require.NoError(t, err)

	pinger := pingerFunc(func(ctx context.Context) error { return nil })
	router := NewRouter(aggregatormocks.NewMockMovieInformationService(ctrl), nil, pinger, logger, RouterOptions{})

	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`[]`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, RouterOptions{})

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestRouter_RateLimitOnlyCoversV1(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t, RouterOptions{
		RateLimit: RateLimitOptions{Enabled: true, Requests: 1, Window: time.Minute},
	})
	f.movieService.EXPECT().GetMovieInformation(gomock.Any(), gomock.Any()).Return([]models.EventInfo{}, nil).Times(1)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/movie?name=Inception", nil)
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	// health stays reachable for probes
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}
