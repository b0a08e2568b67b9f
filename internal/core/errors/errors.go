package errors

import "errors"

// Record and run level failure kinds. Record level kinds are recovered by
// skipping; output conflicts and storage failures end the run.
var (
	ErrMalformedRecord     = errors.New("malformed record")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidZip          = errors.New("invalid zip code")
	ErrInvalidDate         = errors.New("invalid transaction date")
	ErrOutputAlreadyExists = errors.New("output already exists")
	ErrOutputsNotDistinct  = errors.New("outputs must be distinct files")
)

const (
	HttpInternalError    = "internal_error"
	HttpInvalidQuery     = "invalid_query"
	HttpNotFound         = "not_found"
	HttpStoreUnavailable = "store_unavailable"
)

// ErrorResponse is the error response body of the query API.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
