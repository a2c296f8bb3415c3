package aggregators

import (
	"math/rand"
	"testing"
	"time"

	"movie-analytics/internal/models"

	"github.com/stretchr/testify/assert"
)

var testRange = models.DateRange{
	Start: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2016, 3, 31, 23, 59, 0, 0, time.UTC),
}

func TestEventAggregator_Aggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []models.RawEvent
		want   []models.EventSummary
	}{
		{
			name:   "no events",
			events: nil,
			want:   []models.EventSummary{},
		},
		{
			name: "sums counts per event type",
			events: []models.RawEvent{
				{EventType: "play", Partner: "netflix", Movie: "Inception", Count: 3},
				{EventType: "play", Partner: "netflix", Movie: "Inception", Count: 5},
				{EventType: "pause", Partner: "netflix", Movie: "Inception", Count: 2},
			},
			want: []models.EventSummary{
				{EventType: "pause", Partner: "netflix", Movie: "Inception", TotalCount: 2, RangeStart: testRange.Start, RangeEnd: testRange.End},
				{EventType: "play", Partner: "netflix", Movie: "Inception", TotalCount: 8, RangeStart: testRange.Start, RangeEnd: testRange.End},
			},
		},
		{
			name: "first seen partner wins",
			events: []models.RawEvent{
				{EventType: "play", Partner: "hulu", Movie: "Inception", Count: 1},
				{EventType: "play", Partner: "netflix", Movie: "Inception", Count: 1},
			},
			want: []models.EventSummary{
				{EventType: "play", Partner: "hulu", Movie: "Inception", TotalCount: 2, RangeStart: testRange.Start, RangeEnd: testRange.End},
			},
		},
		{
			name: "zero counts still produce a summary",
			events: []models.RawEvent{
				{EventType: "stop", Partner: "netflix", Movie: "Inception", Count: 0},
			},
			want: []models.EventSummary{
				{EventType: "stop", Partner: "netflix", Movie: "Inception", TotalCount: 0, RangeStart: testRange.Start, RangeEnd: testRange.End},
			},
		},
		{
			name: "large counts do not overflow int32",
			events: []models.RawEvent{
				{EventType: "play", Count: 1 << 31},
				{EventType: "play", Count: 1 << 31},
			},
			want: []models.EventSummary{
				{EventType: "play", TotalCount: 1 << 32, RangeStart: testRange.Start, RangeEnd: testRange.End},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEventAggregator().Aggregate(testRange, feed(tt.events))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEventAggregator_Aggregate_OrderIndependent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	eventTypes := []string{"play", "pause", "stop", "seek"}
	events := make([]models.RawEvent, 0, 400)
	for i := 0; i < 400; i++ {
		events = append(events, models.RawEvent{
			EventType: eventTypes[rng.Intn(len(eventTypes))],
			Partner:   "netflix",
			Movie:     "Inception",
			Count:     int64(rng.Intn(50)),
		})
	}

	aggregator := NewEventAggregator()
	want := aggregator.Aggregate(testRange, feed(events))

	for i := 0; i < 20; i++ {
		shuffled := append([]models.RawEvent(nil), events...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, aggregator.Aggregate(testRange, feed(shuffled)))
	}
}

func TestAssembleEventInfos(t *testing.T) {
	t.Parallel()

	summaries := []models.EventSummary{
		{EventType: "pause", Partner: "netflix", Movie: "Inception", TotalCount: 2},
		{EventType: "play", Partner: "netflix", TotalCount: 8},
	}

	got := AssembleEventInfos(summaries, "Inception", "2016-01-01 00:00", "2016-03-31 23:59")

	assert.Equal(t, []models.EventInfo{
		{Name: "pause", Partner: "netflix", Movie: "Inception", Count: 2, StartDate: "2016-01-01 00:00", EndDate: "2016-03-31 23:59"},
		{Name: "play", Partner: "netflix", Movie: "Inception", Count: 8, StartDate: "2016-01-01 00:00", EndDate: "2016-03-31 23:59"},
	}, got)
	assert.Empty(t, AssembleEventInfos(nil, "Inception", "", ""))
}

func feed(events []models.RawEvent) <-chan models.RawEvent {
	ch := make(chan models.RawEvent, len(events))
	for _, e := range events {
		ch <- e
	}
	close(ch)
	return ch
}
