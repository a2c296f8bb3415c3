package ingestors

import (
	"fmt"

	"movie-analytics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed      = "ING_1000"
	codeBatchAlreadyProcessed = "ING_1001"

	codeInternalEventStoreFailed = "ING_9000"
	codeEventStoreUnavailable    = "ING_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errEventBatchAlreadyProcessed returns an error when every partition of a batch was already stored.
func errEventBatchAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeBatchAlreadyProcessed, "event batch already processed", cause)
}

// errInternalEventStoreFailed returns an error when an event store write fails.
func errInternalEventStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventStoreFailed, fmt.Errorf("eventStoreFailed: %w", cause))
}

func errEventStoreUnavailable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeEventStoreUnavailable, "storage backend unavailable", cause)
}
