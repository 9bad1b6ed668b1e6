// Package oracle provides exhaustive reference solvers used to cross-check
// the exact solvers on small instances.
package oracle

import "github.com/katalvlaran/knapsack/instance"

// Bounded enumerates every subset of items (n ≤ 24) and returns the best
// value with its take vector. Ties keep the first subset in enumeration order.
func Bounded(items []instance.Item, budget int64) (int64, []int64) {
	var (
		n         = len(items)
		bestValue int64
		bestMask  uint32
	)
	for mask := uint32(0); mask < 1<<uint(n); mask++ {
		var value, cost int64
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				value += items[i].Value
				cost += items[i].Cost
			}
		}
		if cost <= budget && value > bestValue {
			bestValue, bestMask = value, mask
		}
	}
	counts := make([]int64, n)
	for i := 0; i < n; i++ {
		if bestMask&(1<<uint(i)) != 0 {
			counts[i] = 1
		}
	}

	return bestValue, counts
}

// Unbounded returns the optimal value of the unbounded problem by exhaustive
// recursion over per-item counts. Items with zero cost must have zero value.
func Unbounded(items []instance.Item, budget int64) int64 {
	var rec func(i int, left int64) int64
	rec = func(i int, left int64) int64 {
		if i == len(items) {
			return 0
		}
		it := items[i]
		if it.Cost == 0 {
			return rec(i+1, left)
		}
		var best int64
		for n := int64(0); n*it.Cost <= left; n++ {
			if v := n*it.Value + rec(i+1, left-n*it.Cost); v > best {
				best = v
			}
		}
		return best
	}

	return rec(0, budget)
}
