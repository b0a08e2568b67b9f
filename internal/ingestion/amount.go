package ingestion

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	coreerrors "github.com/smottahedi/find-political-donors/internal/core/errors"
)

// NormalizeAmount keeps only digits and decimal points of raw and truncates
// the result toward zero. "$1,234.99" becomes 1234.
//
// Truncation here is distinct from the half-up rounding applied to medians
// and totals; the two must stay separate.
func NormalizeAmount(raw string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if strings.Trim(cleaned, ".") == "" {
		return 0, fmt.Errorf("%w: %q has no digits", coreerrors.ErrInvalidAmount, raw)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", coreerrors.ErrInvalidAmount, raw)
	}
	whole := d.Truncate(0)
	if !whole.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q out of range", coreerrors.ErrInvalidAmount, raw)
	}
	return whole.IntPart(), nil
}
