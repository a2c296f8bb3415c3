package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-analytics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHealthHandler_Handle(t *testing.T) {
	t.Parallel()

	handler := NewHealthHandler(pingerFunc(func(ctx context.Context) error { return nil }))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	require.NoError(t, handler.Handle(rr, req))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHealthHandler_Handle_BackendDown(t *testing.T) {
	t.Parallel()

	handler := NewHealthHandler(pingerFunc(func(ctx context.Context) error { return assert.AnError }))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	err := handler.Handle(rr, req)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "MOV_9000", svcErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, svcErr.HttpStatusCode)
	assert.ErrorIs(t, err, assert.AnError)
}
