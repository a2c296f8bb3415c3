package models

import "time"

// RawEvent is one stored event row.
//
// Example JSON:
//
//	{
//	  "event": "play",
//	  "partner": "netflix",
//	  "movie": "Inception",
//	  "source": "Chrome",
//	  "dateTime": "2016-01-05T10:00:00Z",
//	  "count": 3
//	}
type RawEvent struct {
	EventType string    `json:"event"`
	Partner   string    `json:"partner"`
	Movie     string    `json:"movie"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"dateTime"`
	Count     int64     `json:"count"`
}

func (e RawEvent) Bucket() BucketKey {
	return NewBucketKey(e.Timestamp.UTC())
}
