package planners

import (
	"math/rand"
	"testing"
	"time"

	"movie-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketPlanner_Plan_SameMonth(t *testing.T) {
	t.Parallel()

	planner := NewBucketPlanner()
	start := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2016, 3, 31, 23, 59, 0, 0, time.UTC)

	descriptors, err := planner.Plan("Inception", start, end)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	assert.Equal(t, models.QueryDescriptor{
		Movie:      "Inception",
		Bucket:     models.BucketKey{Year: 2016, Month: time.March},
		RangeStart: start,
		RangeEnd:   end,
	}, descriptors[0])
}

func TestBucketPlanner_Plan_StartEqualsEnd(t *testing.T) {
	t.Parallel()

	planner := NewBucketPlanner()
	instant := time.Date(2016, 7, 4, 12, 0, 0, 0, time.UTC)

	descriptors, err := planner.Plan("Inception", instant, instant)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "2016/7", descriptors[0].Bucket.String())
}

func TestBucketPlanner_Plan_YearBoundary(t *testing.T) {
	t.Parallel()

	planner := NewBucketPlanner()
	start := time.Date(2016, 11, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2017, 1, 10, 0, 0, 0, 0, time.UTC)

	descriptors, err := planner.Plan("Inception", start, end)
	require.NoError(t, err)

	buckets := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		buckets = append(buckets, d.Bucket.String())
		// every descriptor carries the original request bounds
		assert.Equal(t, start, d.RangeStart)
		assert.Equal(t, end, d.RangeEnd)
		assert.Equal(t, "Inception", d.Movie)
	}
	assert.Equal(t, []string{"2016/11", "2016/12", "2017/1"}, buckets)
}

func TestBucketPlanner_Plan_EndOfMonthStart(t *testing.T) {
	t.Parallel()

	planner := NewBucketPlanner()
	// day-of-month must not push the second bucket past February
	start := time.Date(2016, 1, 31, 10, 0, 0, 0, time.UTC)
	end := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)

	descriptors, err := planner.Plan("Inception", start, end)
	require.NoError(t, err)

	buckets := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		buckets = append(buckets, d.Bucket.String())
	}
	assert.Equal(t, []string{"2016/1", "2016/2", "2016/3"}, buckets)
}

func TestBucketPlanner_Plan_InvalidRange(t *testing.T) {
	t.Parallel()

	planner := NewBucketPlanner()
	start := time.Date(2016, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2016, 4, 1, 0, 0, 0, 0, time.UTC)

	descriptors, err := planner.Plan("Inception", start, end)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Nil(t, descriptors)
}

func TestBucketPlanner_Plan_ChronologicalWithoutGaps(t *testing.T) {
	t.Parallel()

	planner := NewBucketPlanner()
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		start := base.Add(time.Duration(rng.Intn(5*365*24*60)) * time.Minute)
		end := start.Add(time.Duration(rng.Intn(3*365*24*60)) * time.Minute)

		descriptors, err := planner.Plan("Inception", start, end)
		require.NoError(t, err)
		require.Len(t, descriptors, models.MonthsBetweenInclusive(start, end))

		assert.Equal(t, models.NewBucketKey(start), descriptors[0].Bucket)
		assert.Equal(t, models.NewBucketKey(end), descriptors[len(descriptors)-1].Bucket)
		for j := 1; j < len(descriptors); j++ {
			prev, curr := descriptors[j-1].Bucket, descriptors[j].Bucket
			assert.True(t, prev.Before(curr), "buckets must be strictly increasing: %s then %s", prev, curr)
			assert.Equal(t, prev.AddMonths(1), curr, "buckets must not have gaps")
		}
	}
}
