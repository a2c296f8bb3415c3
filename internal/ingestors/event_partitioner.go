package ingestors

import (
	"sort"
	"strings"

	"movie-analytics/internal/models"

	"github.com/mileusna/useragent"
)

// EventPartitioner splits a batch into its (movie, monthly bucket) partitions.
//
// Sources that look like user agent strings are reduced to the browser family, so
// "Mozilla/5.0 (...) Firefox/123.0" is stored as "Firefox". Rows of one partition that share
// timestamp, event type, partner and source are merged into one row with the summed count.
// Partitions are ordered by movie then bucket, rows by timestamp, event type, partner and
// source, so the same batch always yields the same partitions.
//
//go:generate mockgen -source=event_partitioner.go -destination=./mocks/event_partitioner_mock.go -package=mocks
type EventPartitioner interface {
	Partition(batch *models.EventBatch) []models.EventBatchPartition
}

type eventPartitioner struct{}

func NewEventPartitioner() EventPartitioner {
	return &eventPartitioner{}
}

type partitionKey struct {
	movie  string
	bucket models.BucketKey
}

type rowKey struct {
	unixMinute int64
	eventType  string
	partner    string
	source     string
}

func (p *eventPartitioner) Partition(batch *models.EventBatch) []models.EventBatchPartition {
	byPartition := make(map[partitionKey]map[rowKey]*models.RawEvent)

	for _, event := range batch.Events {
		event.Timestamp = event.Timestamp.UTC()
		event.Source = p.normalizeSource(event.Source)

		pk := partitionKey{movie: event.Movie, bucket: event.Bucket()}
		rows, exists := byPartition[pk]
		if !exists {
			rows = make(map[rowKey]*models.RawEvent)
			byPartition[pk] = rows
		}

		rk := rowKey{
			unixMinute: event.Timestamp.Unix() / 60,
			eventType:  event.EventType,
			partner:    event.Partner,
			source:     event.Source,
		}
		if row, ok := rows[rk]; ok {
			row.Count += event.Count
			continue
		}
		row := event
		rows[rk] = &row
	}

	keys := make([]partitionKey, 0, len(byPartition))
	for k := range byPartition {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].movie != keys[j].movie {
			return keys[i].movie < keys[j].movie
		}
		return keys[i].bucket.Before(keys[j].bucket)
	})

	partitions := make([]models.EventBatchPartition, 0, len(keys))
	for _, k := range keys {
		events := make([]models.RawEvent, 0, len(byPartition[k]))
		for _, row := range byPartition[k] {
			events = append(events, *row)
		}
		sort.Slice(events, func(i, j int) bool {
			return lessEvent(events[i], events[j])
		})

		partitions = append(partitions, models.EventBatchPartition{
			BatchID: batch.BatchID,
			Movie:   k.movie,
			Bucket:  k.bucket,
			Events:  events,
		})
	}
	return partitions
}

// normalizeSource parses user agent style sources to extract the family, other sources are kept.
func (p *eventPartitioner) normalizeSource(source string) string {
	if !strings.Contains(source, "/") {
		return source
	}
	parsed := useragent.Parse(source)
	if parsed.Name != "" {
		return parsed.Name
	}
	return source
}

func lessEvent(a, b models.RawEvent) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	if a.EventType != b.EventType {
		return a.EventType < b.EventType
	}
	if a.Partner != b.Partner {
		return a.Partner < b.Partner
	}
	return a.Source < b.Source
}
