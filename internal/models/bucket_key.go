package models

import (
	"fmt"
	"time"
)

// BucketKey identifies a monthly event partition.
//
// Rows are stored with a partition key made of the movie and the bucket string,
// for example the bucket for any timestamp in January 2017 is "2017/1".
type BucketKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func NewBucketKey(t time.Time) BucketKey {
	return BucketKey{Year: t.Year(), Month: t.Month()}
}

// String returns the partition value as stored by the backends ("2016/11", "2017/1").
func (b BucketKey) String() string {
	return fmt.Sprintf("%d/%d", b.Year, int(b.Month))
}

// Start returns the first instant of the bucket in UTC.
func (b BucketKey) Start() time.Time {
	return time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the bucket n calendar months after b.
func (b BucketKey) AddMonths(n int) BucketKey {
	return NewBucketKey(time.Date(b.Year, b.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

func (b BucketKey) Before(other BucketKey) bool {
	if b.Year != other.Year {
		return b.Year < other.Year
	}
	return b.Month < other.Month
}

// MonthsBetweenInclusive counts the buckets touched by [start, end], both endpoint months included.
func MonthsBetweenInclusive(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()-start.Month()) + 1
}
