package aggregation

import (
	"fmt"
	"time"
)

// DateLayout is the MMDDYYYY layout of TRANSACTION_DT: two-digit month,
// two-digit day, four-digit year, no separators.
const DateLayout = "01022006"

// ParseDate parses a transaction date. Out of range months and days
// (e.g. "13322021") are rejected.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q: expected MMDDYYYY", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
