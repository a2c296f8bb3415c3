package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBucketKey_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "single digit month is not padded",
			input:    time.Date(2017, 1, 10, 8, 30, 0, 0, time.UTC),
			expected: "2017/1",
		},
		{
			name:     "two digit month",
			input:    time.Date(2016, 11, 15, 0, 0, 0, 0, time.UTC),
			expected: "2016/11",
		},
		{
			name:     "last minute of the year",
			input:    time.Date(2016, 12, 31, 23, 59, 0, 0, time.UTC),
			expected: "2016/12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NewBucketKey(tt.input).String())
		})
	}
}

func TestBucketKey_AddMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bucket   BucketKey
		months   int
		expected BucketKey
	}{
		{
			name:     "zero months",
			bucket:   BucketKey{Year: 2016, Month: time.May},
			months:   0,
			expected: BucketKey{Year: 2016, Month: time.May},
		},
		{
			name:     "rolls over the year",
			bucket:   BucketKey{Year: 2016, Month: time.November},
			months:   2,
			expected: BucketKey{Year: 2017, Month: time.January},
		},
		{
			name:     "several years",
			bucket:   BucketKey{Year: 2015, Month: time.March},
			months:   25,
			expected: BucketKey{Year: 2017, Month: time.April},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.bucket.AddMonths(tt.months))
		})
	}
}

func TestBucketKey_Before(t *testing.T) {
	t.Parallel()

	assert.True(t, BucketKey{Year: 2016, Month: time.December}.Before(BucketKey{Year: 2017, Month: time.January}))
	assert.True(t, BucketKey{Year: 2016, Month: time.January}.Before(BucketKey{Year: 2016, Month: time.February}))
	assert.False(t, BucketKey{Year: 2016, Month: time.February}.Before(BucketKey{Year: 2016, Month: time.February}))
	assert.False(t, BucketKey{Year: 2017, Month: time.January}.Before(BucketKey{Year: 2016, Month: time.December}))
}

func TestMonthsBetweenInclusive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "same month",
			start:    time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2016, 3, 31, 23, 59, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "end of month to start of next",
			start:    time.Date(2016, 1, 31, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC),
			expected: 2,
		},
		{
			name:     "year boundary",
			start:    time.Date(2016, 11, 15, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2017, 1, 10, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "full year",
			start:    time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC),
			expected: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, MonthsBetweenInclusive(tt.start, tt.end))
		})
	}
}
