package models

import "time"

// EventSummary is the per event type total of a movie over a date range.
type EventSummary struct {
	EventType  string
	Partner    string
	Movie      string
	TotalCount int64
	RangeStart time.Time
	RangeEnd   time.Time
}

// EventInfo is the response record for one event type.
//
// Example JSON:
//
//	{
//	  "name": "play",
//	  "partner": "netflix",
//	  "movie": "Inception",
//	  "count": 8,
//	  "startDate": "2016-01-01 00:00",
//	  "endDate": "2016-03-31 23:59"
//	}
type EventInfo struct {
	Name      string `json:"name"`
	Partner   string `json:"partner"`
	Movie     string `json:"movie"`
	Count     int64  `json:"count"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
