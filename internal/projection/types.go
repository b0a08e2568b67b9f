package projection

import (
	v1 "github.com/smottahedi/find-political-donors/internal/api/v1"
)

const (
	GranularityDay   = "day"
	GranularityTotal = "total"
)

// ZipQueryRequest selects the zip aggregates of one recipient.
type ZipQueryRequest struct {
	RecipientID string `uri:"recipient_id" binding:"required"`
	Zip         string `form:"zip"` // optional five-character filter
}

// DateQueryRequest selects the date aggregates of one recipient within an
// inclusive MMDDYYYY range. Empty bounds are open.
type DateQueryRequest struct {
	RecipientID string `uri:"recipient_id" binding:"required"`
	Start       string `form:"start"`
	End         string `form:"end"`
	Granularity string `form:"granularity"` // default: "day"
}

// AggregateQueryResponse is the body of both aggregate endpoints.
type AggregateQueryResponse struct {
	RecipientID string             `json:"recipient_id"`
	Grouping    string             `json:"grouping"`
	Granularity string             `json:"granularity,omitempty"`
	Start       string             `json:"start,omitempty"`
	End         string             `json:"end,omitempty"`
	Values      []v1.AggregateView `json:"values"`
}
