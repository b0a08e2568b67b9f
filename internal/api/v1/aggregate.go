package v1

// AggregateView is the JSON shape of one aggregate record.
type AggregateView struct {
	RecipientID  string `json:"recipient_id"`
	Grouping     string `json:"grouping"`
	Secondary    string `json:"secondary"`
	Median       int64  `json:"median"`
	Count        int64  `json:"count"`
	Total        int64  `json:"total"`
	LastSequence int64  `json:"last_sequence,omitempty"`
}

// CheckpointView is the JSON shape of the latest flush checkpoint.
type CheckpointView struct {
	RunID     string `json:"run_id"`
	Sequence  int64  `json:"sequence"`
	Flushes   int64  `json:"flushes"`
	FlushedAt int64  `json:"flushed_at"`
}
