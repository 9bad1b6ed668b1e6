package bnb

import (
	"math"
	"math/bits"

	"github.com/katalvlaran/knapsack/instance"
)

// Bound returns the fractional-relaxation upper bound of the bounded (0/1)
// problem from a partial state: items[from:] are still undecided, value has
// been accumulated, and budgetLeft remains.
//
// Walking items in ratio order, whole items are added while
// budgetLeft >= item.Cost (an item whose cost equals the remaining budget is
// taken whole). The first item that does not fit contributes the fraction
// budgetLeft·Value/Cost and the walk stops. If every remaining item fits, the
// returned value is exact.
//
// Every achievable value is an integer, so the fractional term is floored;
// floor(LP) is still ≥ the best integral completion. Products are computed
// in 128 bits and sums saturate at math.MaxInt64, so the result can never
// underestimate because of overflow.
//
// items must be sorted by descending ratio (see Preprocess).
//
// Complexity: O(len(items)-from).
func Bound(items []instance.Item, from int, value, budgetLeft int64) int64 {
	for k := from; k < len(items); k++ {
		it := items[k]
		if budgetLeft < it.Cost {
			return addSat(value, fracFloor(budgetLeft, it.Value, it.Cost))
		}
		budgetLeft -= it.Cost
		value = addSat(value, it.Value)
	}

	return value
}

// UnboundedBound returns the relaxation bound of the unbounded problem from a
// partial state: unlimited (fractional) units of the first item k ≥ from that
// still fits, i.e. value + floor(budgetLeft·Value_k/Cost_k). Items that do not
// fit are skipped: the remaining budget only shrinks deeper in the search, so
// they can never be taken. If no item fits, value is returned.
//
// Zero-cost items must have been removed (see SolveUnbounded).
//
// Complexity: O(len(items)-from) in the worst case, O(1) typically.
func UnboundedBound(items []instance.Item, from int, value, budgetLeft int64) int64 {
	for k := from; k < len(items); k++ {
		it := items[k]
		if it.Cost > budgetLeft {
			continue
		}

		return addSat(value, fracFloor(budgetLeft, it.Value, it.Cost))
	}

	return value
}

// fracFloor returns floor(b·v/c) for b, v ≥ 0 and c > 0, saturating at
// math.MaxInt64. c == 0 is treated as an infinite ratio.
func fracFloor(b, v, c int64) int64 {
	if c == 0 {
		if v == 0 {
			return 0
		}
		return math.MaxInt64
	}
	hi, lo := bits.Mul64(uint64(b), uint64(v))
	if hi >= uint64(c) {
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, uint64(c))
	if q > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(q)
}

// addSat adds two non-negative int64 values, saturating at math.MaxInt64.
func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}

	return a + b
}
