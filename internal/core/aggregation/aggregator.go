package aggregation

import (
	"fmt"
	"unicode/utf8"

	v1 "github.com/smottahedi/find-political-donors/internal/api/v1"
	coreerrors "github.com/smottahedi/find-political-donors/internal/core/errors"
)

// ZipPrefixLength is the number of significant zip code characters.
const ZipPrefixLength = 5

// Gate decides whether a transaction contributes to a grouping and derives
// the composite key it contributes to. A transaction rejected by one gate
// may still pass the other.
type Gate interface {
	Grouping() Grouping

	// Key returns the key for tx, or an error wrapping the grouping's
	// rejection kind (ErrInvalidZip, ErrInvalidDate).
	Key(tx v1.Transaction) (Key, error)
}

// Gates is the registry of groupings every transaction is routed through.
var Gates = map[Grouping]Gate{
	GroupingZip:  zipGate{},
	GroupingDate: dateGate{},
}

// zipGate keys on (recipient, zip prefix). Prefixes shorter than five
// characters come from partial zip codes and are rejected.
type zipGate struct{}

func (zipGate) Grouping() Grouping { return GroupingZip }

func (zipGate) Key(tx v1.Transaction) (Key, error) {
	if utf8.RuneCountInString(tx.ZipPrefix) < ZipPrefixLength {
		return Key{}, fmt.Errorf("%w: %q", coreerrors.ErrInvalidZip, tx.ZipPrefix)
	}
	return Key{Grouping: GroupingZip, RecipientID: tx.RecipientID, Secondary: tx.ZipPrefix}, nil
}

// dateGate keys on (recipient, transaction date).
type dateGate struct{}

func (dateGate) Grouping() Grouping { return GroupingDate }

func (dateGate) Key(tx v1.Transaction) (Key, error) {
	if _, err := ParseDate(tx.Date); err != nil {
		return Key{}, fmt.Errorf("%w: %v", coreerrors.ErrInvalidDate, err)
	}
	return Key{Grouping: GroupingDate, RecipientID: tx.RecipientID, Secondary: tx.Date}, nil
}
