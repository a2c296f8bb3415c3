package models

import "time"

// QueryDescriptor describes the query for one bucket of a movie event range.
// RangeStart and RangeEnd are the original request bounds; the backend restricts
// rows of the bucket partition to [RangeStart, RangeEnd].
type QueryDescriptor struct {
	Movie      string
	Bucket     BucketKey
	RangeStart time.Time
	RangeEnd   time.Time
}

func (q QueryDescriptor) DateRange() DateRange {
	return DateRange{Start: q.RangeStart, End: q.RangeEnd}
}
