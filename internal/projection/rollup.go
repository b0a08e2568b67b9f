package projection

import (
	"github.com/shopspring/decimal"

	v1 "github.com/smottahedi/find-political-donors/internal/api/v1"
	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
)

func toView(rec *aggregation.Record) v1.AggregateView {
	s := rec.Summary()
	return v1.AggregateView{
		RecipientID:  s.RecipientID,
		Grouping:     string(rec.Key.Grouping),
		Secondary:    s.Secondary,
		Median:       s.Median,
		Count:        s.Count,
		Total:        s.Total,
		LastSequence: rec.LastSequence,
	}
}

func convertToValues(records []*aggregation.Record) []v1.AggregateView {
	values := make([]v1.AggregateView, 0, len(records))
	for _, rec := range records {
		values = append(values, toView(rec))
	}
	return values
}

// rollupTotal merges the histories of chronologically ordered date records
// into one aggregate. The median is taken over the merged amounts, never
// over the per-date medians. Secondary spans the first and last date.
// A range whose total does not fit an int64 is an invalid query.
func rollupTotal(records []*aggregation.Record) ([]v1.AggregateView, error) {
	if len(records) == 0 {
		return []v1.AggregateView{}, nil
	}

	var (
		merged  []int64
		total   decimal.Decimal
		lastSeq int64
	)
	for _, rec := range records {
		merged = append(merged, rec.Amounts...)
		total = total.Add(decimal.NewFromInt(rec.Total()))
		if rec.LastSequence > lastSeq {
			lastSeq = rec.LastSequence
		}
	}

	first := records[0].Key
	last := records[len(records)-1].Key
	if !total.BigInt().IsInt64() {
		return nil, invalidQueryf("total of %s from %s to %s is out of range, narrow the range", first.RecipientID, first.Secondary, last.Secondary)
	}
	secondary := first.Secondary
	if last.Secondary != first.Secondary {
		secondary = first.Secondary + "-" + last.Secondary
	}

	return []v1.AggregateView{{
		RecipientID:  first.RecipientID,
		Grouping:     string(aggregation.GroupingDate),
		Secondary:    secondary,
		Median:       aggregation.RoundHalfUp(aggregation.MedianOf(merged)),
		Count:        int64(len(merged)),
		Total:        total.IntPart(),
		LastSequence: lastSeq,
	}}, nil
}
