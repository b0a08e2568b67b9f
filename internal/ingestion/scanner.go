package ingestion

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	v1 "github.com/smottahedi/find-political-donors/internal/api/v1"
)

// DefaultMaxLineBytes bounds a single input line.
const DefaultMaxLineBytes = 1 << 20

// Scanner reads input lines in order and hands every valid transaction to a
// callback. Rejected lines are counted and skipped.
type Scanner struct {
	parser       *Parser
	maxLineBytes int
}

func NewScanner(parser *Parser, maxLineBytes int) *Scanner {
	if parser == nil {
		panic("ingestion: parser must not be nil")
	}
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &Scanner{parser: parser, maxLineBytes: maxLineBytes}
}

// Scan consumes r to the end. An error returned by fn stops the scan and is
// returned as is; stats cover every line read up to that point.
func (s *Scanner) Scan(ctx context.Context, r io.Reader, stats *Stats, fn func(v1.Transaction) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, s.maxLineBytes)), s.maxLineBytes)

	var lineNo int64
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		stats.Lines++

		tx, err := s.parser.Parse(sc.Text(), lineNo)
		if err != nil {
			var recErr *RecordError
			if !errors.As(err, &recErr) {
				return err
			}
			stats.Skip(recErr.Reason)
			slog.Debug("[Ingestion] Skipping line", "line", lineNo, "reason", recErr.Reason, "error", recErr.Err)
			continue
		}

		stats.Accepted++
		if err := fn(tx); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input at line %d: %w", lineNo+1, err)
	}
	return nil
}
