package ingestors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"movie-analytics/internal/models"
	"movie-analytics/internal/shared/loggers"
	"movie-analytics/internal/shared/metrics"
	"movie-analytics/internal/shared/ulid"
	"movie-analytics/internal/shared/validators"
	"movie-analytics/internal/stores"

	"github.com/goccy/go-json"
)

const (
	maxBatchBytes = 2 * 1024 * 1024
)

const (
	FormatJSON = "json"
)

// batchIDPattern bounds idempotency keys because the batch ID becomes a storage key segment.
var batchIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// IngestResult represents the result of a batch ingestion operation.
type IngestResult struct {
	BatchID        string `json:"batchId"`
	StoredCount    int    `json:"storedCount"`
	PartitionCount int    `json:"partitionCount"`
}

// eventRow is one element of the ingestion body.
//
// Example JSON:
//
//	{"event": "play", "partner": "netflix", "movie": "Inception", "source": "Chrome", "dateTime": "2016-01-05 10:00", "count": 3}
type eventRow struct {
	Event    string `json:"event" validate:"required,max=64"`
	Partner  string `json:"partner" validate:"required,max=128"`
	Movie    string `json:"movie" validate:"required,max=256"`
	Source   string `json:"source" validate:"max=1024"`
	DateTime string `json:"dateTime" validate:"required,datetime=2006-01-02 15:04"`
	Count    *int64 `json:"count" validate:"required,min=0"`
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestBatch stores a batch of raw events from JSON format.
	IngestBatch(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	partitioner EventPartitioner
	eventStore  stores.EventStore
	validate    *validators.Validate
}

func NewIngestionService(partitioner EventPartitioner, eventStore stores.EventStore) IngestionService {
	return &ingestionService{
		partitioner: partitioner,
		eventStore:  eventStore,
		validate:    validators.New(),
	}
}

func (s *ingestionService) IngestBatch(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	result, err := s.ingestBatch(ctx, idempotencyKey, format, r)

	errorCode := metrics.ErrorCodeLabel(err)
	metricBatchIngestedTotal.WithLabelValues(errorCode).Inc()

	return result, err
}

func (s *ingestionService) ingestBatch(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting batch with idempotency key: %s, format: %s", idempotencyKey, format)

	batchID := strings.TrimSpace(idempotencyKey)
	if batchID != "" && !batchIDPattern.MatchString(batchID) {
		return nil, errValidationFailed("invalid idempotency-key: must match [A-Za-z0-9_-]{1,128}", nil)
	}

	events, err := s.validateEventBatch(format, r)
	if err != nil {
		return nil, err
	}

	if batchID == "" {
		batchID = ulid.NewULID()
	}

	partitions := s.partitioner.Partition(&models.EventBatch{BatchID: batchID, Events: events})

	result := &IngestResult{BatchID: batchID, PartitionCount: len(partitions)}
	duplicates := 0
	for _, partition := range partitions {
		err := s.eventStore.AppendBucket(ctx, partition)
		switch {
		case err == nil:
			result.StoredCount += len(partition.Events)
		case errors.Is(err, stores.ErrEventBatchAlreadyExist):
			// a retried batch resumes with the partitions it did not store yet
			duplicates++
			logger.Debug().
				Str(loggers.FieldBatchID, batchID).
				Str(loggers.FieldMovie, partition.Movie).
				Str(loggers.FieldBucket, partition.Bucket.String()).
				Msg("skipped already stored partition")
		case errors.Is(err, stores.ErrBackendUnavailable):
			return nil, errEventStoreUnavailable(err)
		default:
			return nil, errInternalEventStoreFailed(err)
		}
	}

	if duplicates == len(partitions) {
		return nil, errEventBatchAlreadyProcessed(stores.ErrEventBatchAlreadyExist)
	}

	metricEventsStoredTotal.Add(float64(result.StoredCount))
	logger.Info().
		Str(loggers.FieldBatchID, batchID).
		Int(loggers.FieldRowCount, result.StoredCount).
		Msgf("ingested batch into %d partitions (%d already stored)", len(partitions), duplicates)
	return result, nil
}

func (s *ingestionService) validateEventBatch(format string, r io.Reader) ([]models.RawEvent, error) {
	// Handle nil reader
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := s.readWithLimit(r, maxBatchBytes)
	if err != nil {
		return nil, err
	}

	// Parse based on format (using contains for flexible matching)
	if !strings.Contains(strings.ToLower(format), FormatJSON) {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	var rows []eventRow
	if err := json.Unmarshal(buf, &rows); err != nil {
		return nil, errValidationFailed("invalid json: expected an array of events", err)
	}
	if len(rows) == 0 {
		return nil, errValidationFailed("events cannot be empty", nil)
	}

	events := make([]models.RawEvent, 0, len(rows))
	for i, row := range rows {
		event, err := s.toRawEvent(row, i)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// readWithLimit reads up to max+1 bytes from r and checks if it exceeds max.
func (s *ingestionService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > max {
		return nil, errValidationFailed("batch too large: must be <= 2MB", nil)
	}
	return buf, nil
}

func (s *ingestionService) toRawEvent(row eventRow, index int) (models.RawEvent, error) {
	row.Event = strings.TrimSpace(row.Event)
	row.Partner = strings.TrimSpace(row.Partner)
	row.Movie = strings.TrimSpace(row.Movie)
	row.Source = strings.TrimSpace(row.Source)
	row.DateTime = strings.TrimSpace(row.DateTime)

	if err := s.validate.Struct(row); err != nil {
		var fieldErrors validators.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return models.RawEvent{}, errValidationFailed(
				fmt.Sprintf("item at index %d: %s", index, formatFieldError(fieldErrors[0])), err)
		}
		return models.RawEvent{}, errValidationFailed(fmt.Sprintf("item at index %d: invalid event", index), err)
	}

	timestamp, err := models.ParseDateTime(row.DateTime)
	if err != nil {
		return models.RawEvent{}, errValidationFailed(fmt.Sprintf("item at index %d: %s", index, err.Error()), err)
	}

	return models.RawEvent{
		EventType: row.Event,
		Partner:   row.Partner,
		Movie:     row.Movie,
		Source:    row.Source,
		Timestamp: timestamp,
		Count:     *row.Count,
	}, nil
}

// formatFieldError uses the json field name, e.g. "dateTime: expected format YYYY-MM-DD HH:mm".
func formatFieldError(e validators.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("missing %s", field)
	case "max":
		return fmt.Sprintf("%s too long: max %s characters", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be >= %s", field, e.Param())
	case "datetime":
		return fmt.Sprintf("%s: expected format YYYY-MM-DD HH:mm", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
	}
}
