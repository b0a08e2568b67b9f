// Package report writes the zip and date reports.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	coreerrors "github.com/smottahedi/find-political-donors/internal/core/errors"
)

// Separator joins the fields of a report line.
const Separator = "|"

// CheckAbsent fails with ErrOutputsNotDistinct if two of paths name the
// same file, and with ErrOutputAlreadyExists if any of paths exists.
func CheckAbsent(paths ...string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving output %s: %w", p, err)
		}
		if prev, ok := seen[abs]; ok {
			return fmt.Errorf("%w: %s and %s", coreerrors.ErrOutputsNotDistinct, prev, p)
		}
		seen[abs] = p
	}

	for _, p := range paths {
		_, err := os.Lstat(p)
		if err == nil {
			return fmt.Errorf("%w: %s", coreerrors.ErrOutputAlreadyExists, p)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking output %s: %w", p, err)
		}
	}
	return nil
}

// FormatLine renders recipient|secondary|median|count|total without a newline.
func FormatLine(s aggregation.Summary) string {
	var b strings.Builder
	b.Grow(len(s.RecipientID) + len(s.Secondary) + 32)
	b.WriteString(s.RecipientID)
	b.WriteString(Separator)
	b.WriteString(s.Secondary)
	b.WriteString(Separator)
	b.WriteString(strconv.FormatInt(s.Median, 10))
	b.WriteString(Separator)
	b.WriteString(strconv.FormatInt(s.Count, 10))
	b.WriteString(Separator)
	b.WriteString(strconv.FormatInt(s.Total, 10))
	return b.String()
}

// ZipReport is the append-only running zip report. WriteZip appends to an
// in-memory buffer rather than the file: lines reach the file only on Flush
// and Close, which the run ties to store flushes. The file therefore lags
// the input by up to one store cache of lines and always ends at a flush
// boundary, matching what the store can restore.
type ZipReport struct {
	file    *os.File
	pending bytes.Buffer
	lines   int64
}

// OpenZipReport creates the report file. It fails if path already exists.
func OpenZipReport(path string) (*ZipReport, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_APPEND, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w: %s", coreerrors.ErrOutputAlreadyExists, path)
	}
	if err != nil {
		return nil, fmt.Errorf("creating zip report: %w", err)
	}
	return &ZipReport{file: f}, nil
}

// WriteZip appends one line for the current state of a zip record.
func (r *ZipReport) WriteZip(s aggregation.Summary) error {
	r.pending.WriteString(FormatLine(s))
	r.pending.WriteByte('\n')
	r.lines++
	return nil
}

// Flush writes pending lines to the file.
func (r *ZipReport) Flush() error {
	if r.pending.Len() == 0 {
		return nil
	}
	if _, err := r.file.Write(r.pending.Bytes()); err != nil {
		return fmt.Errorf("flushing zip report: %w", err)
	}
	r.pending.Reset()
	return nil
}

// Lines returns the number of lines written so far, pending ones included.
func (r *ZipReport) Lines() int64 {
	return r.lines
}

// Abort drops pending lines and closes the file, leaving the report as of
// the last Flush.
func (r *ZipReport) Abort() error {
	r.pending.Reset()
	return r.file.Close()
}

func (r *ZipReport) Close() error {
	err := r.Flush()
	if cerr := r.file.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing zip report: %w", cerr)
	}
	return err
}
