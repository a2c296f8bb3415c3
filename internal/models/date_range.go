package models

import (
	"fmt"
	"time"
)

// DateTimeLayout is the lexical format of request and ingestion timestamps (YYYY-MM-DD HH:mm).
const DateTimeLayout = "2006-01-02 15:04"

// DateRange is an inclusive time range with minute precision.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParseDateTime parses a DateTimeLayout value as UTC.
func ParseDateTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date time %q: expected format YYYY-MM-DD HH:mm", value)
	}
	return t, nil
}

func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) IsInverted() bool {
	return r.End.Before(r.Start)
}
