package storage

import (
	"context"
	"errors"
	"time"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
)

// ErrClosed is returned by operations on a closed repository.
var ErrClosed = errors.New("repository is closed")

// Checkpoint describes the last durable prefix of one run's input.
type Checkpoint struct {
	RunID     string
	Sequence  int64 // transactions covered by the flush
	Flushes   int64
	FlushedAt time.Time
}

// Repository persists aggregate records. Records handed in and out are
// copies; the repository never aliases caller state.
type Repository interface {
	// Fetch returns the stored record for key. ok is false if none exists.
	Fetch(ctx context.Context, key aggregation.Key) (rec *aggregation.Record, ok bool, err error)

	// Flush writes records and the run checkpoint atomically. A checkpoint
	// that is not newer than the durable one for the same run is ignored
	// together with its records.
	Flush(ctx context.Context, records []*aggregation.Record, cp Checkpoint) error

	// Each calls fn for every record of grouping, ordered by recipient and
	// secondary key text.
	Each(ctx context.Context, grouping aggregation.Grouping, fn func(*aggregation.Record) error) error

	// ListByRecipient returns the records of one recipient in a grouping.
	ListByRecipient(ctx context.Context, grouping aggregation.Grouping, recipientID string) ([]*aggregation.Record, error)

	// LatestCheckpoint returns the most recent checkpoint of any run.
	LatestCheckpoint(ctx context.Context) (cp Checkpoint, ok bool, err error)

	// Reset deletes all records and checkpoints.
	Reset(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}
