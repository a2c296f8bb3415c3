package aggregators

import (
	"sort"

	"movie-analytics/internal/models"
)

// EventAggregator folds a row stream into one summary per event type.
//
// Counts of the same event type are summed as int64. Partner and movie of a summary are taken
// from the first row of that type; later rows only add to TotalCount. Summaries are sorted by
// event type so the response does not depend on the order in which buckets completed.
//
// Example: rows (play, 3), (pause, 1), (play, 5) give [{pause, 1}, {play, 8}].
//
//go:generate mockgen -source=event_aggregator.go -destination=./mocks/event_aggregator_mock.go -package=mocks
type EventAggregator interface {
	// Aggregate consumes events until the channel is closed.
	Aggregate(dateRange models.DateRange, events <-chan models.RawEvent) []models.EventSummary
}

type eventAggregator struct{}

func NewEventAggregator() EventAggregator {
	return &eventAggregator{}
}

func (a *eventAggregator) Aggregate(dateRange models.DateRange, events <-chan models.RawEvent) []models.EventSummary {
	byEventType := make(map[string]*models.EventSummary)

	for event := range events {
		summary, exists := byEventType[event.EventType]
		if !exists {
			summary = &models.EventSummary{
				EventType:  event.EventType,
				Partner:    event.Partner,
				Movie:      event.Movie,
				RangeStart: dateRange.Start,
				RangeEnd:   dateRange.End,
			}
			byEventType[event.EventType] = summary
		}
		summary.TotalCount += event.Count
	}

	summaries := make([]models.EventSummary, 0, len(byEventType))
	for _, summary := range byEventType {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EventType < summaries[j].EventType
	})
	return summaries
}
