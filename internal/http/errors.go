package http

import (
	"movie-analytics/internal/shared/svcerrors"
)

const codeBackendUnavailable = "MOV_9000"

func errBackendUnavailable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeBackendUnavailable, "storage backend unavailable", cause)
}
