package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/natefinch/atomic"
	"go.uber.org/multierr"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	coreerrors "github.com/smottahedi/find-political-donors/internal/core/errors"
)

// SortDateSummaries orders summaries by recipient, then by calendar date.
// Dates that do not parse sort after valid ones of the same recipient, by text.
func SortDateSummaries(summaries []aggregation.Summary) {
	type entry struct {
		s    aggregation.Summary
		date time.Time
		ok   bool
	}
	entries := make([]entry, len(summaries))
	for i, s := range summaries {
		d, err := aggregation.ParseDate(s.Secondary)
		entries[i] = entry{s: s, date: d, ok: err == nil}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.s.RecipientID != b.s.RecipientID {
			return a.s.RecipientID < b.s.RecipientID
		}
		switch {
		case a.ok && b.ok:
			return a.date.Before(b.date)
		case a.ok != b.ok:
			return a.ok
		default:
			return a.s.Secondary < b.s.Secondary
		}
	})

	for i := range entries {
		summaries[i] = entries[i].s
	}
}

// WriteDateReport sorts summaries and writes them to target in one pass.
// The report is staged next to target and linked into place, so target
// either holds the complete report or does not exist. An existing target
// is never replaced; it fails with ErrOutputAlreadyExists.
func WriteDateReport(target string, summaries []aggregation.Summary) (err error) {
	SortDateSummaries(summaries)

	staging, err := reserveStaging(target)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, ignoreNotExist(os.Remove(staging)))
	}()

	r, w := io.Pipe()
	go func() {
		bw := bufio.NewWriter(w)
		var werr error
		for _, s := range summaries {
			if _, werr = bw.WriteString(FormatLine(s) + "\n"); werr != nil {
				break
			}
		}
		w.CloseWithError(multierr.Append(werr, bw.Flush()))
	}()
	err = atomic.WriteFile(staging, r)
	r.Close()
	if err != nil {
		return fmt.Errorf("writing date report: %w", err)
	}

	err = os.Link(staging, target)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", coreerrors.ErrOutputAlreadyExists, target)
	}
	if err != nil {
		return fmt.Errorf("publishing date report: %w", err)
	}
	return nil
}

// reserveStaging creates an empty file beside target. atomic.WriteFile keeps
// the mode of the file it replaces, so the reservation carries the report mode.
func reserveStaging(target string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+"-")
	if err != nil {
		return "", fmt.Errorf("staging date report: %w", err)
	}
	name := f.Name()
	err = multierr.Combine(f.Close(), os.Chmod(name, 0o644))
	if err != nil {
		return "", multierr.Append(fmt.Errorf("staging date report: %w", err), os.Remove(name))
	}
	return name, nil
}

func ignoreNotExist(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
