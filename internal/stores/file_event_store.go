package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"movie-analytics/internal/models"
	"movie-analytics/internal/shared/filestorages"

	"github.com/goccy/go-json"
)

// fileEventStore keeps every ingestion batch partition as an immutable JSON file:
//
//	events/<movie>/<year>/<month>/<batchID>.json
//
// A bucket query lists the partition directory and filters the rows of each file by the
// descriptor range. Put with AllowOverwrite: false makes a replayed batch detectable, the
// second writer of a batch partition receives ErrEventBatchAlreadyExist.
type fileEventStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewFileEventStore(fileStorage filestorages.FileStorage) EventStore {
	return &fileEventStore{fileStorage: fileStorage, dir: "events"}
}

func (s *fileEventStore) QueryBucket(ctx context.Context, descriptor models.QueryDescriptor, emit EmitFunc) error {
	keys, err := s.fileStorage.List(ctx, s.partitionDir(descriptor.Movie, descriptor.Bucket))
	if err != nil {
		return fmt.Errorf("failed to list bucket %s: %w", descriptor.Bucket, err)
	}

	dateRange := descriptor.DateRange()
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		partition, err := s.read(ctx, key)
		if err != nil {
			return err
		}
		for _, event := range partition.Events {
			if event.Movie != descriptor.Movie || !dateRange.Contains(event.Timestamp) {
				continue
			}
			if err := emit(event); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *fileEventStore) AppendBucket(ctx context.Context, partition models.EventBatchPartition) error {
	jsonData, err := json.Marshal(partition)
	if err != nil {
		return fmt.Errorf("failed to marshal event batch partition: %w", err)
	}

	key := fmt.Sprintf("%s/%s.json", s.partitionDir(partition.Movie, partition.Bucket), partition.BatchID)
	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrEventBatchAlreadyExist
		}
		return fmt.Errorf("failed to put event batch partition: %w", err)
	}
	return nil
}

func (s *fileEventStore) Ping(ctx context.Context) error {
	if _, err := s.fileStorage.List(ctx, s.dir); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *fileEventStore) read(ctx context.Context, key string) (*models.EventBatchPartition, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get event batch partition %s: %w", key, err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read event batch partition %s: %w", key, err)
	}
	var partition models.EventBatchPartition
	if err := json.Unmarshal(data, &partition); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event batch partition %s: %w", key, err)
	}
	return &partition, nil
}

func (s *fileEventStore) partitionDir(movie string, bucket models.BucketKey) string {
	return fmt.Sprintf("%s/%s/%d/%d", s.dir, escapeMovie(movie), bucket.Year, int(bucket.Month))
}

// escapeMovie turns a movie name into a single path segment. Dots are escaped too so that
// names like ".." stay inside the events directory.
func escapeMovie(movie string) string {
	return strings.ReplaceAll(url.PathEscape(movie), ".", "%2E")
}
