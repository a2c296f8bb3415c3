package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldMovie       = "movie"
	FieldBucket      = "bucket"
	FieldBucketCount = "bucket_count"
	FieldRowCount    = "row_count"
	FieldBatchID     = "batch_id"
	FieldBackend     = "backend"
	FieldBreaker     = "breaker"
)
