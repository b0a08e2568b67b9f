package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
)

// MemoryRepository keeps records in process memory. It is used by tests and
// by runs that do not need durable state.
type MemoryRepository struct {
	mu          sync.RWMutex
	records     map[aggregation.Key]*aggregation.Record
	checkpoints map[string]Checkpoint
	flushes     int
	closed      bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:     make(map[aggregation.Key]*aggregation.Record),
		checkpoints: make(map[string]Checkpoint),
	}
}

func (m *MemoryRepository) Fetch(ctx context.Context, key aggregation.Key) (*aggregation.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, false, ErrClosed
	}
	rec, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	return rec.Clone(), true, nil
}

func (m *MemoryRepository) Flush(ctx context.Context, records []*aggregation.Record, cp Checkpoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if prev, ok := m.checkpoints[cp.RunID]; ok && cp.Sequence <= prev.Sequence {
		return nil
	}
	for _, rec := range records {
		m.records[rec.Key] = rec.Clone()
	}
	m.checkpoints[cp.RunID] = cp
	m.flushes++
	return nil
}

func (m *MemoryRepository) Each(ctx context.Context, grouping aggregation.Grouping, fn func(*aggregation.Record) error) error {
	m.mu.RLock()
	var matched []*aggregation.Record
	for key, rec := range m.records {
		if key.Grouping == grouping {
			matched = append(matched, rec.Clone())
		}
	}
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	sortRecords(matched)
	for _, rec := range matched {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryRepository) ListByRecipient(ctx context.Context, grouping aggregation.Grouping, recipientID string) ([]*aggregation.Record, error) {
	var out []*aggregation.Record
	err := m.Each(ctx, grouping, func(rec *aggregation.Record) error {
		if rec.Key.RecipientID == recipientID {
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

func (m *MemoryRepository) LatestCheckpoint(ctx context.Context) (Checkpoint, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Checkpoint{}, false, ErrClosed
	}
	var (
		latest Checkpoint
		found  bool
	)
	for _, cp := range m.checkpoints {
		if !found || cp.FlushedAt.After(latest.FlushedAt) ||
			(cp.FlushedAt.Equal(latest.FlushedAt) && cp.Sequence > latest.Sequence) {
			latest, found = cp, true
		}
	}
	return latest, found, nil
}

func (m *MemoryRepository) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.records = make(map[aggregation.Key]*aggregation.Record)
	m.checkpoints = make(map[string]Checkpoint)
	return nil
}

func (m *MemoryRepository) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *MemoryRepository) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// FlushCount returns how many flushes were applied.
func (m *MemoryRepository) FlushCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flushes
}

func sortRecords(records []*aggregation.Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].Key, records[j].Key
		if a.RecipientID != b.RecipientID {
			return a.RecipientID < b.RecipientID
		}
		return a.Secondary < b.Secondary
	})
}
