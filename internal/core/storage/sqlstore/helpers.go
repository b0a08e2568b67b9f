package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// marshalAmounts encodes an amount history. An empty history is "[]", never NULL.
func marshalAmounts(amounts []int64) ([]byte, error) {
	if amounts == nil {
		amounts = []int64{}
	}
	data, err := json.Marshal(amounts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amounts: %w", err)
	}
	return data, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecordRow scans (recipient_id, secondary, amounts, last_sequence).
// Compatible with both sql.Row and sql.Rows.
func scanRecordRow(row scanner, grouping aggregation.Grouping) (*aggregation.Record, error) {
	var (
		key          = aggregation.Key{Grouping: grouping}
		amountsJSON  []byte
		lastSequence int64
	)
	if err := row.Scan(&key.RecipientID, &key.Secondary, &amountsJSON, &lastSequence); err != nil {
		return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
	}
	return restore(key, amountsJSON, lastSequence)
}

func restore(key aggregation.Key, amountsJSON []byte, lastSequence int64) (*aggregation.Record, error) {
	var amounts []int64
	if err := json.Unmarshal(amountsJSON, &amounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal amounts of %s: %w", key, err)
	}
	return aggregation.RestoreRecord(key, amounts, lastSequence), nil
}
