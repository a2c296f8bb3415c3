package aggregators

import (
	"fmt"

	"movie-analytics/internal/shared/svcerrors"
)

// MovieInformationService errors
const (
	codeValidationFailed = "MOV_1000"
	codeInvalidRange     = "MOV_1001"

	codeBackendUnavailable = "MOV_9000"
	codeQueryFailed        = "MOV_9001"
	codeQueryTimeout       = "MOV_9002"
)

// errValidationFailed returns an error for missing or malformed request parameters.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errInvalidRange(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRange, "endDate must not be before startDate", cause)
}

// errBackendUnavailable returns an error when the event store cannot be reached.
func errBackendUnavailable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeBackendUnavailable, "storage backend unavailable", cause)
}

// errQueryFailed returns an error when a bucket query failed.
func errQueryFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeQueryFailed, fmt.Errorf("bucketQueryFailed: %w", cause))
}

func errQueryTimeout(cause error) *svcerrors.ServiceError {
	return svcerrors.NewTimeoutError(codeQueryTimeout, "query timed out", cause)
}
