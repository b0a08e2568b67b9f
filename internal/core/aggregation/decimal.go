package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"
)

var half = decimal.New(5, -1)

// RoundHalfUp splits d into its integral and fractional parts. A fraction
// strictly below 0.5 keeps the integral part, anything else adds one.
//
// Negative inputs have a negative fraction, which is always below 0.5, so
// they keep their integral part: RoundHalfUp(-0.5) == 0, RoundHalfUp(-2.7) == -2.
func RoundHalfUp(d decimal.Decimal) int64 {
	whole := d.Truncate(0)
	if d.Sub(whole).LessThan(half) {
		return whole.IntPart()
	}
	return whole.IntPart() + 1
}

// MedianOf returns the exact median of amounts without rounding.
// The mean of the two middle values is used for even lengths.
// amounts is not modified.
func MedianOf(amounts []int64) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}
	sorted := make([]int64, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return decimal.NewFromInt(sorted[mid])
	}
	return meanOfTwo(sorted[mid-1], sorted[mid])
}

func meanOfTwo(a, b int64) decimal.Decimal {
	return decimal.NewFromInt(a).Add(decimal.NewFromInt(b)).Div(decimal.NewFromInt(2))
}
