package aggregation

import (
	"context"
	"io"
	"log/slog"

	"go.uber.org/multierr"

	v1 "github.com/smottahedi/find-political-donors/internal/api/v1"
	"github.com/smottahedi/find-political-donors/internal/core/storage"
	"github.com/smottahedi/find-political-donors/internal/ingestion"
	"github.com/smottahedi/find-political-donors/internal/report"
)

// RunResult summarizes a completed run.
type RunResult struct {
	RunID     string
	Stats     *ingestion.Stats
	ZipLines  int64
	DateLines int
	Flushes   int64
}

// Run reads input once, writes the zip report while reading, and writes the
// sorted date report at the end. Both outputs must not exist yet.
//
// The zip report is flushed together with the store. On failure it is left
// as of the last store flush and no date report is written. The store is
// flushed but not closed.
func Run(ctx context.Context, input io.Reader, zipPath, datePath string, scanner *ingestion.Scanner, store *Store) (result RunResult, err error) {
	if err := report.CheckAbsent(zipPath, datePath); err != nil {
		return RunResult{}, err
	}

	zip, err := report.OpenZipReport(zipPath)
	if err != nil {
		return RunResult{}, err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, zip.Abort())
			return
		}
		err = zip.Close()
	}()
	store.OnFlush(func(context.Context, storage.Checkpoint) error {
		return zip.Flush()
	})

	stats := ingestion.NewStats()
	engine := NewEngine(store, zip, stats)

	if err := scanner.Scan(ctx, input, stats, func(tx v1.Transaction) error {
		return engine.Process(ctx, tx)
	}); err != nil {
		return RunResult{}, err
	}

	summaries, err := engine.DateSummaries(ctx)
	if err != nil {
		return RunResult{}, err
	}
	if err := report.WriteDateReport(datePath, summaries); err != nil {
		return RunResult{}, err
	}

	result = RunResult{
		RunID:     store.RunID(),
		Stats:     stats,
		ZipLines:  zip.Lines(),
		DateLines: len(summaries),
		Flushes:   store.Flushes(),
	}
	slog.Info("[Run] Completed",
		"run_id", result.RunID,
		"stats", stats,
		"zip_lines", result.ZipLines,
		"date_lines", result.DateLines,
		"flushes", result.Flushes,
	)
	return result, nil
}
