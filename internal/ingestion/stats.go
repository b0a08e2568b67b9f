package ingestion

import "log/slog"

// Stats counts what happened to the input lines of one run.
// Zip and date skips are per grouping: a line counted there may still have
// updated the other grouping.
type Stats struct {
	Lines    int64
	Accepted int64
	Skipped  map[SkipReason]int64
}

func NewStats() *Stats {
	return &Stats{Skipped: make(map[SkipReason]int64, len(SkipReasons))}
}

func (s *Stats) Skip(reason SkipReason) {
	s.Skipped[reason]++
}

// Rejected is the number of lines that produced no transaction at all.
func (s *Stats) Rejected() int64 {
	return s.Skipped[SkipMalformed] + s.Skipped[SkipInvalidAmount]
}

// LogValue implements slog.LogValuer.
func (s *Stats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("lines", s.Lines),
		slog.Int64("accepted", s.Accepted),
	}
	for _, r := range SkipReasons {
		attrs = append(attrs, slog.Int64(string(r), s.Skipped[r]))
	}
	return slog.GroupValue(attrs...)
}
