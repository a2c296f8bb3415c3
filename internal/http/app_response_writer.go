package http

import (
	"net/http"

	"movie-analytics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter wraps http.ResponseWriter and keeps the service error for the middlewares.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// responseStatus returns the written status, 200 when the handler never called WriteHeader.
func responseStatus(w http.ResponseWriter) int {
	status := 0
	if appWriter, ok := w.(*appResponseWriter); ok {
		status = appWriter.Status()
	}
	if status == 0 {
		return http.StatusOK
	}
	return status
}

func responseErrorCode(w http.ResponseWriter) string {
	if appWriter, ok := w.(*appResponseWriter); ok {
		return appWriter.ErrorCode()
	}
	return ""
}
