package queries

import (
	"fmt"

	"movie-analytics/internal/models"
)

// QueryFailureError reports the bucket whose query failed.
type QueryFailureError struct {
	Bucket models.BucketKey
	Cause  error
}

func (e *QueryFailureError) Error() string {
	return fmt.Sprintf("query for bucket %s failed: %v", e.Bucket, e.Cause)
}

func (e *QueryFailureError) Unwrap() error {
	return e.Cause
}
