package models

// EventBatch is a batch of raw events received by the ingestion endpoint.
type EventBatch struct {
	BatchID string
	Events  []RawEvent
}

// EventBatchPartition holds the rows of one batch that belong to a single
// (movie, bucket) partition.
type EventBatchPartition struct {
	BatchID string     `json:"batchId"`
	Movie   string     `json:"movie"`
	Bucket  BucketKey  `json:"bucket"`
	Events  []RawEvent `json:"events"`
}
