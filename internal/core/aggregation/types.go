package aggregation

import (
	"fmt"

	"github.com/shopspring/decimal"

	coreerrors "github.com/smottahedi/find-political-donors/internal/core/errors"
)

// Grouping names one of the independent key namespaces.
type Grouping string

const (
	GroupingZip  Grouping = "zip"
	GroupingDate Grouping = "date"
)

// Key uniquely identifies an aggregate record within its grouping.
// Keys of different groupings never collide, even with equal fields.
type Key struct {
	Grouping    Grouping
	RecipientID string
	Secondary   string // zip prefix or MMDDYYYY date, depending on Grouping
}

func (k Key) String() string {
	return string(k.Grouping) + ":" + k.RecipientID + " " + k.Secondary
}

// Summary is the derived view of a record at one point in time.
// It is a value: holding one never aliases store state.
type Summary struct {
	RecipientID string
	Secondary   string
	Median      int64
	Count       int64
	Total       int64
}

// Record holds the full amount history of one key.
//
// Amounts is append-only and kept in arrival order. Median and total are
// derived from it and never persisted; they are rebuilt lazily after a
// record has been restored from storage.
type Record struct {
	Key          Key
	Amounts      []int64
	LastSequence int64 // store sequence of the transaction that last touched this record

	derived *derivedState
}

type derivedState struct {
	median medianTracker
	total  decimal.Decimal
}

// NewRecord creates a record seeded with a single amount.
func NewRecord(key Key, amount int64, sequence int64) *Record {
	r := &Record{Key: key}
	d := r.state()
	r.Amounts = []int64{amount}
	d.median.push(amount)
	d.total = decimal.NewFromInt(amount)
	r.LastSequence = sequence
	return r
}

// RestoreRecord rebuilds a record from its persisted history.
func RestoreRecord(key Key, amounts []int64, lastSequence int64) *Record {
	return &Record{
		Key:          key,
		Amounts:      amounts,
		LastSequence: lastSequence,
	}
}

// Append adds an amount to the history. It fails, leaving the record
// unchanged, when the total would no longer fit in an int64; the error
// wraps ErrInvalidAmount.
func (r *Record) Append(amount int64, sequence int64) error {
	d := r.state()
	total := d.total.Add(decimal.NewFromInt(amount))
	if !total.BigInt().IsInt64() {
		return fmt.Errorf("%w: total of %s out of range after adding %d", coreerrors.ErrInvalidAmount, r.Key, amount)
	}
	r.Amounts = append(r.Amounts, amount)
	d.median.push(amount)
	d.total = total
	r.LastSequence = sequence
	return nil
}

// Count returns the number of recorded amounts.
func (r *Record) Count() int64 {
	return int64(len(r.Amounts))
}

// Median returns the exact median of the history, rounded half-up.
func (r *Record) Median() int64 {
	if len(r.Amounts) == 0 {
		return 0
	}
	return RoundHalfUp(r.state().median.value())
}

// Total returns the sum of the history, rounded half-up.
func (r *Record) Total() int64 {
	return RoundHalfUp(r.state().total)
}

// Summary snapshots the derived statistics.
func (r *Record) Summary() Summary {
	return Summary{
		RecipientID: r.Key.RecipientID,
		Secondary:   r.Key.Secondary,
		Median:      r.Median(),
		Count:       r.Count(),
		Total:       r.Total(),
	}
}

// Clone returns a deep copy sharing no state with r.
func (r *Record) Clone() *Record {
	amounts := make([]int64, len(r.Amounts))
	copy(amounts, r.Amounts)
	return RestoreRecord(r.Key, amounts, r.LastSequence)
}

func (r *Record) state() *derivedState {
	if r.derived != nil {
		return r.derived
	}
	d := &derivedState{}
	for _, a := range r.Amounts {
		d.median.push(a)
		d.total = d.total.Add(decimal.NewFromInt(a))
	}
	r.derived = d
	return d
}
