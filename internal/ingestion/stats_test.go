package ingestion

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_RejectedAndLogValue(t *testing.T) {
	s := NewStats()
	s.Lines = 6
	s.Accepted = 3
	s.Skip(SkipMalformed)
	s.Skip(SkipMalformed)
	s.Skip(SkipInvalidAmount)
	s.Skip(SkipInvalidZip)

	require.Equal(t, int64(3), s.Rejected())

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("done", "stats", s)

	out := buf.String()
	assert.Contains(t, out, "stats.lines=6")
	assert.Contains(t, out, "stats.accepted=3")
	assert.Contains(t, out, "stats.malformed=2")
	assert.Contains(t, out, "stats.invalid_zip=1")
	assert.Contains(t, out, "stats.invalid_date=0")
}
