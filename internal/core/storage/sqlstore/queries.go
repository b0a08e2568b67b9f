package sqlstore

import (
	"strconv"
	"strings"
)

// Queries are written with ? placeholders and rebound for postgres at open.
const (
	queryFetchAggregate = `
		SELECT amounts, last_sequence
		FROM aggregates
		WHERE grouping_name = ? AND recipient_id = ? AND secondary = ?
	`

	queryUpsertAggregate = `
		INSERT INTO aggregates (grouping_name, recipient_id, secondary, amounts, last_sequence)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (grouping_name, recipient_id, secondary)
		DO UPDATE SET
			amounts       = excluded.amounts,
			last_sequence = excluded.last_sequence
	`

	// The WHERE clause keeps checkpoints monotonic per run: a stale flush
	// affects no row.
	queryUpsertCheckpoint = `
		INSERT INTO flush_checkpoints (run_id, sequence, flushes, flushed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (run_id)
		DO UPDATE SET
			sequence   = excluded.sequence,
			flushes    = excluded.flushes,
			flushed_at = excluded.flushed_at
		WHERE flush_checkpoints.sequence < excluded.sequence
	`

	queryEachAggregate = `
		SELECT recipient_id, secondary, amounts, last_sequence
		FROM aggregates
		WHERE grouping_name = ?
		ORDER BY recipient_id ASC, secondary ASC
	`

	queryListByRecipient = `
		SELECT recipient_id, secondary, amounts, last_sequence
		FROM aggregates
		WHERE grouping_name = ? AND recipient_id = ?
		ORDER BY secondary ASC
	`

	queryLatestCheckpoint = `
		SELECT run_id, sequence, flushes, flushed_at
		FROM flush_checkpoints
		ORDER BY flushed_at DESC, sequence DESC
		LIMIT 1
	`

	queryDeleteAggregates  = `DELETE FROM aggregates`
	queryDeleteCheckpoints = `DELETE FROM flush_checkpoints`
)

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
