package aggregation

import (
	"context"
	"fmt"
	"log/slog"

	v1 "github.com/smottahedi/find-political-donors/internal/api/v1"
	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	"github.com/smottahedi/find-political-donors/internal/ingestion"
)

// ZipSink receives the state of a zip record after every update.
type ZipSink interface {
	WriteZip(s aggregation.Summary) error
}

// routeOrder fixes the order in which a transaction visits the groupings.
var routeOrder = []aggregation.Grouping{aggregation.GroupingZip, aggregation.GroupingDate}

// Engine routes transactions into the zip and date groupings. The zip path
// writes through to the sink; the date path only accumulates.
type Engine struct {
	store *Store
	zip   ZipSink
	stats *ingestion.Stats
}

func NewEngine(store *Store, zip ZipSink, stats *ingestion.Stats) *Engine {
	if store == nil {
		panic("aggregation: store must not be nil")
	}
	if zip == nil {
		panic("aggregation: zip sink must not be nil")
	}
	if stats == nil {
		stats = ingestion.NewStats()
	}
	return &Engine{store: store, zip: zip, stats: stats}
}

// Stats returns the counters the engine updates.
func (e *Engine) Stats() *ingestion.Stats {
	return e.stats
}

// Process applies one transaction. A gate rejection skips only that
// grouping; storage and sink failures are returned.
func (e *Engine) Process(ctx context.Context, tx v1.Transaction) error {
	for _, grouping := range routeOrder {
		key, err := aggregation.Gates[grouping].Key(tx)
		if err != nil {
			reason, ok := ingestion.ReasonOf(err)
			if !ok {
				return err
			}
			e.stats.Skip(reason)
			slog.Debug("[Engine] Skipping grouping", "line", tx.Line, "grouping", grouping, "reason", reason)
			continue
		}

		summary, err := e.store.Update(ctx, key, tx.Amount)
		if err != nil {
			// A total that no longer fits skips this grouping only.
			if reason, ok := ingestion.ReasonOf(err); ok {
				e.stats.Skip(reason)
				slog.Warn("[Engine] Skipping grouping", "line", tx.Line, "grouping", grouping, "reason", reason, "error", err)
				continue
			}
			return fmt.Errorf("line %d: %w", tx.Line, err)
		}
		if grouping == aggregation.GroupingZip {
			if err := e.zip.WriteZip(summary); err != nil {
				return fmt.Errorf("line %d: %w", tx.Line, err)
			}
		}
	}
	return e.store.Commit(ctx)
}

// DateSummaries returns the statistics of every date record, unsorted.
func (e *Engine) DateSummaries(ctx context.Context) ([]aggregation.Summary, error) {
	var out []aggregation.Summary
	err := e.store.Each(ctx, aggregation.GroupingDate, func(s aggregation.Summary) error {
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting date aggregates: %w", err)
	}
	return out, nil
}
