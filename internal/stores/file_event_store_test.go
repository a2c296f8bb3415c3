package stores

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"movie-analytics/internal/models"
	"movie-analytics/internal/shared/filestorages"
	"movie-analytics/internal/shared/filestorages/mocks"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFileEventStore_AppendThenQuery_FiltersByRangeInclusive(t *testing.T) {
	t.Parallel()

	store := newTestFileEventStore(t)
	ctx := context.Background()

	march := models.BucketKey{Year: 2016, Month: time.March}
	err := store.AppendBucket(ctx, models.EventBatchPartition{
		BatchID: "batch-1",
		Movie:   "Inception",
		Bucket:  march,
		Events: []models.RawEvent{
			newEvent("play", "2016-03-01 00:00", 1),
			newEvent("play", "2016-03-15 12:00", 2),
			newEvent("pause", "2016-03-20 08:30", 4),
		},
	})
	require.NoError(t, err)
	err = store.AppendBucket(ctx, models.EventBatchPartition{
		BatchID: "batch-2",
		Movie:   "Inception",
		Bucket:  march,
		Events:  []models.RawEvent{newEvent("play", "2016-03-20 08:30", 8)},
	})
	require.NoError(t, err)

	descriptor := models.QueryDescriptor{
		Movie:      "Inception",
		Bucket:     march,
		RangeStart: mustParse(t, "2016-03-01 00:00"),
		RangeEnd:   mustParse(t, "2016-03-20 08:30"),
	}
	var got []models.RawEvent
	err = store.QueryBucket(ctx, descriptor, func(e models.RawEvent) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)

	var total int64
	for _, e := range got {
		total += e.Count
	}
	assert.Len(t, got, 4)
	assert.Equal(t, int64(15), total)

	descriptor.RangeStart = mustParse(t, "2016-03-01 00:01")
	descriptor.RangeEnd = mustParse(t, "2016-03-20 08:29")
	got = nil
	err = store.QueryBucket(ctx, descriptor, func(e models.RawEvent) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Count)
}

func TestFileEventStore_QueryBucket_OtherPartitionsUntouched(t *testing.T) {
	t.Parallel()

	store := newTestFileEventStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendBucket(ctx, models.EventBatchPartition{
		BatchID: "b",
		Movie:   "Inception",
		Bucket:  models.BucketKey{Year: 2016, Month: time.April},
		Events:  []models.RawEvent{newEvent("play", "2016-04-02 00:00", 1)},
	}))
	require.NoError(t, store.AppendBucket(ctx, models.EventBatchPartition{
		BatchID: "b",
		Movie:   "Interstellar",
		Bucket:  models.BucketKey{Year: 2016, Month: time.March},
		Events:  []models.RawEvent{newEventFor("Interstellar", "play", "2016-03-02 00:00", 1)},
	}))

	descriptor := models.QueryDescriptor{
		Movie:      "Inception",
		Bucket:     models.BucketKey{Year: 2016, Month: time.March},
		RangeStart: mustParse(t, "2016-01-01 00:00"),
		RangeEnd:   mustParse(t, "2016-12-31 23:59"),
	}
	called := false
	err := store.QueryBucket(ctx, descriptor, func(models.RawEvent) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestFileEventStore_AppendBucket_Duplicate(t *testing.T) {
	t.Parallel()

	store := newTestFileEventStore(t)
	ctx := context.Background()
	partition := models.EventBatchPartition{
		BatchID: "batch-1",
		Movie:   "Inception",
		Bucket:  models.BucketKey{Year: 2016, Month: time.March},
		Events:  []models.RawEvent{newEvent("play", "2016-03-01 00:00", 1)},
	}

	require.NoError(t, store.AppendBucket(ctx, partition))
	err := store.AppendBucket(ctx, partition)
	assert.ErrorIs(t, err, ErrEventBatchAlreadyExist)
}

func TestFileEventStore_MovieNameStaysInsideEventsDir(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileEventStore(mockFileStorage)

	mockFileStorage.EXPECT().
		Put(gomock.Any(), "events/%2E%2E%2Fetc/2016/3/b.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		Return(&filestorages.PutResult{}, nil)

	err := store.AppendBucket(context.Background(), models.EventBatchPartition{
		BatchID: "b",
		Movie:   "../etc",
		Bucket:  models.BucketKey{Year: 2016, Month: time.March},
	})
	require.NoError(t, err)
}

func TestFileEventStore_QueryBucket_EmitErrorStops(t *testing.T) {
	t.Parallel()

	store := newTestFileEventStore(t)
	ctx := context.Background()
	require.NoError(t, store.AppendBucket(ctx, models.EventBatchPartition{
		BatchID: "b",
		Movie:   "Inception",
		Bucket:  models.BucketKey{Year: 2016, Month: time.March},
		Events: []models.RawEvent{
			newEvent("play", "2016-03-01 00:00", 1),
			newEvent("play", "2016-03-02 00:00", 1),
		},
	}))

	stop := errors.New("stop")
	calls := 0
	err := store.QueryBucket(ctx, models.QueryDescriptor{
		Movie:      "Inception",
		Bucket:     models.BucketKey{Year: 2016, Month: time.March},
		RangeStart: mustParse(t, "2016-03-01 00:00"),
		RangeEnd:   mustParse(t, "2016-03-31 23:59"),
	}, func(models.RawEvent) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestFileEventStore_QueryBucket_StorageErrors(t *testing.T) {
	t.Parallel()

	descriptor := models.QueryDescriptor{
		Movie:      "Inception",
		Bucket:     models.BucketKey{Year: 2016, Month: time.March},
		RangeStart: time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2016, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	diskErr := errors.New("disk failure")

	tests := []struct {
		name  string
		setup func(m *mocks.MockFileStorage)
	}{
		{
			name: "list fails",
			setup: func(m *mocks.MockFileStorage) {
				m.EXPECT().List(gomock.Any(), "events/Inception/2016/3").Return(nil, diskErr)
			},
		},
		{
			name: "get fails",
			setup: func(m *mocks.MockFileStorage) {
				m.EXPECT().List(gomock.Any(), "events/Inception/2016/3").Return([]string{"events/Inception/2016/3/b.json"}, nil)
				m.EXPECT().Get(gomock.Any(), "events/Inception/2016/3/b.json").Return(nil, diskErr)
			},
		},
		{
			name: "corrupt file",
			setup: func(m *mocks.MockFileStorage) {
				m.EXPECT().List(gomock.Any(), "events/Inception/2016/3").Return([]string{"events/Inception/2016/3/b.json"}, nil)
				m.EXPECT().Get(gomock.Any(), "events/Inception/2016/3/b.json").Return(io.NopCloser(strings.NewReader("{not json")), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockFileStorage := mocks.NewMockFileStorage(ctrl)
			tt.setup(mockFileStorage)

			err := NewFileEventStore(mockFileStorage).QueryBucket(context.Background(), descriptor, func(models.RawEvent) error { return nil })
			assert.Error(t, err)
		})
	}
}

func TestFileEventStore_StoredFormat(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileEventStore(mockFileStorage)

	partition := models.EventBatchPartition{
		BatchID: "batch-9",
		Movie:   "Inception",
		Bucket:  models.BucketKey{Year: 2017, Month: time.January},
		Events:  []models.RawEvent{newEvent("play", "2017-01-05 10:00", 3)},
	}

	mockFileStorage.EXPECT().
		Put(gomock.Any(), "events/Inception/2017/1/batch-9.json", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		DoAndReturn(func(_ context.Context, key string, r io.Reader, _ filestorages.PutOptions) (*filestorages.PutResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			var stored models.EventBatchPartition
			require.NoError(t, json.Unmarshal(data, &stored))
			assert.Equal(t, partition, stored)
			return &filestorages.PutResult{FileKey: key}, nil
		})

	require.NoError(t, store.AppendBucket(context.Background(), partition))
}

func TestFileEventStore_Ping(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewFileEventStore(mockFileStorage)

	mockFileStorage.EXPECT().List(gomock.Any(), "events").Return(nil, errors.New("permission denied"))
	assert.ErrorIs(t, store.Ping(context.Background()), ErrBackendUnavailable)

	mockFileStorage.EXPECT().List(gomock.Any(), "events").Return([]string{}, nil)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestValidateTableName(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"events_by_hour", "_events", "Events2"} {
		assert.NoError(t, validateTableName(valid), valid)
	}
	for _, invalid := range []string{"", "2events", "events; DROP TABLE x", "analytics.events", "events-by-hour"} {
		assert.ErrorIs(t, validateTableName(invalid), ErrInvalidTableName, invalid)
	}
}

func newTestFileEventStore(t *testing.T) EventStore {
	t.Helper()
	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return NewFileEventStore(fileStorage)
}

func newEvent(eventType, dateTime string, count int64) models.RawEvent {
	return newEventFor("Inception", eventType, dateTime, count)
}

func newEventFor(movie, eventType, dateTime string, count int64) models.RawEvent {
	ts, err := models.ParseDateTime(dateTime)
	if err != nil {
		panic(err)
	}
	return models.RawEvent{
		EventType: eventType,
		Partner:   "netflix",
		Movie:     movie,
		Source:    "Chrome",
		Timestamp: ts,
		Count:     count,
	}
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := models.ParseDateTime(value)
	require.NoError(t, err)
	return ts
}
