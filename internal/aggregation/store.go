package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	"github.com/smottahedi/find-political-donors/internal/core/storage"
)

// DefaultCacheSize is the number of transactions between automatic flushes.
const DefaultCacheSize = 1000

// FlushHook runs after every successful flush.
type FlushHook func(ctx context.Context, cp storage.Checkpoint) error

// StoreOptions configures a Store.
type StoreOptions struct {
	CacheSize int
	RunID     string           // generated when empty
	Now       func() time.Time // checkpoint clock, time.Now when nil
}

func (o StoreOptions) normalized() StoreOptions {
	n := o
	if n.CacheSize <= 0 {
		n.CacheSize = DefaultCacheSize
	}
	if n.RunID == "" {
		n.RunID = uuid.NewString()
	}
	if n.Now == nil {
		n.Now = time.Now
	}
	return n
}

// Store is the durable aggregation store of one run.
//
// Records mutated since the last flush live in a write buffer; everything
// else lives only in the repository. Every update is a fetch, mutate, put
// round trip on that buffer, and callers only ever receive summaries.
// A Store is not safe for concurrent use.
type Store struct {
	repo storage.Repository
	opts StoreOptions

	dirty map[aggregation.Key]*aggregation.Record

	sequence   int64 // committed transactions
	flushedSeq int64
	sinceFlush int
	flushes    int64
	hooks      []FlushHook
	closed     bool
}

func NewStore(repo storage.Repository, opts StoreOptions) *Store {
	if repo == nil {
		panic("aggregation: repository must not be nil")
	}
	return &Store{
		repo:  repo,
		opts:  opts.normalized(),
		dirty: make(map[aggregation.Key]*aggregation.Record),
	}
}

// RunID identifies this run in flush checkpoints.
func (s *Store) RunID() string {
	return s.opts.RunID
}

// Sequence returns the number of committed transactions.
func (s *Store) Sequence() int64 {
	return s.sequence
}

// OnFlush registers a hook that runs after each successful flush.
func (s *Store) OnFlush(h FlushHook) {
	s.hooks = append(s.hooks, h)
}

// Update creates the record for key seeded with amount, or appends amount
// to its history, and returns the resulting statistics.
func (s *Store) Update(ctx context.Context, key aggregation.Key, amount int64) (aggregation.Summary, error) {
	if s.closed {
		return aggregation.Summary{}, storage.ErrClosed
	}
	seq := s.sequence + 1

	rec, err := s.fetch(ctx, key)
	if err != nil {
		return aggregation.Summary{}, err
	}
	if rec == nil {
		rec = aggregation.NewRecord(key, amount, seq)
	} else if err := rec.Append(amount, seq); err != nil {
		return aggregation.Summary{}, err
	}
	s.dirty[key] = rec
	return rec.Summary(), nil
}

func (s *Store) fetch(ctx context.Context, key aggregation.Key) (*aggregation.Record, error) {
	if rec, ok := s.dirty[key]; ok {
		return rec, nil
	}
	rec, ok, err := s.repo.Fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	return rec, nil
}

// Commit ends one transaction. Every CacheSize commits the store flushes.
func (s *Store) Commit(ctx context.Context) error {
	if s.closed {
		return storage.ErrClosed
	}
	s.sequence++
	s.sinceFlush++
	if s.sinceFlush < s.opts.CacheSize {
		return nil
	}
	return s.Flush(ctx)
}

// Flush persists all buffered records and the run checkpoint atomically,
// then empties the buffer. It is a no-op when nothing changed since the
// last flush.
func (s *Store) Flush(ctx context.Context) error {
	if s.closed {
		return storage.ErrClosed
	}
	if len(s.dirty) == 0 && s.sequence == s.flushedSeq {
		return nil
	}

	records := make([]*aggregation.Record, 0, len(s.dirty))
	for _, rec := range s.dirty {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key.String() < records[j].Key.String()
	})

	cp := storage.Checkpoint{
		RunID:     s.opts.RunID,
		Sequence:  s.sequence,
		Flushes:   s.flushes + 1,
		FlushedAt: s.opts.Now().UTC(),
	}
	if err := s.repo.Flush(ctx, records, cp); err != nil {
		return fmt.Errorf("flush at sequence %d: %w", s.sequence, err)
	}

	s.dirty = make(map[aggregation.Key]*aggregation.Record)
	s.flushedSeq = s.sequence
	s.sinceFlush = 0
	s.flushes++

	slog.Debug("[Store] Flushed",
		"run_id", cp.RunID,
		"records", len(records),
		"sequence", cp.Sequence,
		"flushes", cp.Flushes,
	)

	for _, h := range s.hooks {
		if err := h(ctx, cp); err != nil {
			return fmt.Errorf("flush hook: %w", err)
		}
	}
	return nil
}

// Each flushes, then calls fn with the statistics of every record in
// grouping, ordered by recipient and secondary key text.
func (s *Store) Each(ctx context.Context, grouping aggregation.Grouping, fn func(aggregation.Summary) error) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}
	return s.repo.Each(ctx, grouping, func(rec *aggregation.Record) error {
		return fn(rec.Summary())
	})
}

// Flushes returns how many flushes completed.
func (s *Store) Flushes() int64 {
	return s.flushes
}

// Close flushes and releases the repository. It is safe to call twice.
func (s *Store) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	err := s.Flush(ctx)
	s.closed = true
	err = multierr.Append(err, s.repo.Close())
	if err == nil {
		slog.Debug("[Store] Closed", "run_id", s.opts.RunID, "sequence", s.sequence, "flushes", s.flushes)
	}
	return err
}
