package queries

import (
	"context"
	"fmt"
	"sync"

	"movie-analytics/internal/models"

	"golang.org/x/sync/errgroup"
)

// EventStream is the merged row stream of one request.
//
// Events is closed once every producer has finished. Err must only be read after Events is
// closed, it then reports the first producer failure or nil.
type EventStream interface {
	Events() <-chan models.RawEvent
	Err() error
}

// eventMerger fans the rows of many producers into one buffered channel. Rows are forwarded as
// they arrive without ordering, deduplication or drops.
//
// A failing producer does not cancel its siblings: they run to completion and the first failure
// is reported by Err once the stream is closed. Cancelling the producers' context stops them
// all, a producer blocked on a full channel gives up with the context error.
type eventMerger struct {
	group  errgroup.Group
	events chan models.RawEvent

	sealOnce sync.Once
	err      error
}

// newEventMerger creates a merger with the given channel capacity. maxInFlight bounds the number
// of concurrently running producers, 0 means unbounded.
func newEventMerger(bufferSize, maxInFlight int) *eventMerger {
	m := &eventMerger{events: make(chan models.RawEvent, bufferSize)}
	if maxInFlight > 0 {
		m.group.SetLimit(maxInFlight)
	}
	return m
}

// Go starts a producer for bucket. With a producer limit set, Go blocks until a slot is free.
func (m *eventMerger) Go(ctx context.Context, bucket models.BucketKey, produce func(emit func(models.RawEvent) error) error) {
	m.group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &QueryFailureError{Bucket: bucket, Cause: fmt.Errorf("panic: %v", r)}
			}
		}()
		return produce(func(event models.RawEvent) error {
			return m.emit(ctx, event)
		})
	})
}

// Seal waits for every producer started so far and closes the stream. No producer may be
// started after Seal.
func (m *eventMerger) Seal() {
	m.sealOnce.Do(func() {
		m.err = m.group.Wait()
		close(m.events)
	})
}

func (m *eventMerger) Events() <-chan models.RawEvent {
	return m.events
}

func (m *eventMerger) Err() error {
	return m.err
}

func (m *eventMerger) emit(ctx context.Context, event models.RawEvent) error {
	select {
	case m.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
