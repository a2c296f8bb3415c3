package planners

import (
	"errors"
	"fmt"
	"time"

	"movie-analytics/internal/models"
)

var (
	ErrInvalidRange = errors.New("invalid date range")
)

// BucketPlanner decomposes a movie date range into one query per monthly bucket.
//
// Event rows are partitioned by (movie, year/month) so that partitions stay bounded in size.
// A range that crosses months can therefore not be served by a single partition read;
// instead every month touched by the range gets its own QueryDescriptor, all of which carry
// the original range bounds as the row filter.
//
// Example: start=2016-11-15 00:00, end=2017-01-10 00:00 produces the buckets
// 2016/11, 2016/12 and 2017/1 in that order.
//
//go:generate mockgen -source=bucket_planner.go -destination=./mocks/bucket_planner_mock.go -package=mocks
type BucketPlanner interface {
	Plan(movie string, start, end time.Time) ([]models.QueryDescriptor, error)
}

type bucketPlanner struct{}

func NewBucketPlanner() BucketPlanner {
	return &bucketPlanner{}
}

func (p *bucketPlanner) Plan(movie string, start, end time.Time) ([]models.QueryDescriptor, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange,
			models.FormatDateTime(end), models.FormatDateTime(start))
	}

	monthSpan := models.MonthsBetweenInclusive(start, end)
	firstBucket := models.NewBucketKey(start)

	descriptors := make([]models.QueryDescriptor, 0, monthSpan)
	for i := 0; i < monthSpan; i++ {
		descriptors = append(descriptors, models.QueryDescriptor{
			Movie:      movie,
			Bucket:     firstBucket.AddMonths(i),
			RangeStart: start,
			RangeEnd:   end,
		})
	}
	return descriptors, nil
}
