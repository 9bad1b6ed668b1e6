package instance

import (
	"fmt"
	"math"
	"math/bits"
)

// Item is a single (Value, Cost) pair. Items have no identity beyond their
// position in the Instance that holds them.
type Item struct {
	Value int64
	Cost  int64
}

// Ratio returns Value/Cost, or +Inf when Cost == 0.
// It is informational; ordering decisions use Better, which is exact.
func (it Item) Ratio() float64 {
	if it.Cost == 0 {
		return math.Inf(1)
	}

	return float64(it.Value) / float64(it.Cost)
}

// Better reports whether it has a strictly greater value/cost ratio than
// other. The comparison is done by 128-bit cross multiplication
// (it.Value·other.Cost > other.Value·it.Cost), so two items with close ratios
// are never mis-ordered by float rounding. A zero-cost item with positive
// value is better than every positive-cost item.
//
// Both items must be non-negative (see Instance.Validate).
func (it Item) Better(other Item) bool {
	return CompareProducts(it.Value, other.Cost, other.Value, it.Cost) > 0
}

// CompareProducts compares a·b with c·d for non-negative operands without
// overflow and returns -1, 0 or +1.
//
// Complexity: O(1).
func CompareProducts(a, b, c, d int64) int {
	hi1, lo1 := bits.Mul64(uint64(a), uint64(b))
	hi2, lo2 := bits.Mul64(uint64(c), uint64(d))
	switch {
	case hi1 != hi2:
		if hi1 > hi2 {
			return 1
		}
		return -1
	case lo1 != lo2:
		if lo1 > lo2 {
			return 1
		}
		return -1
	default:
		return 0
	}
}

// String renders the item as "(value=V, cost=C)".
func (it Item) String() string {
	return fmt.Sprintf("(value=%d, cost=%d)", it.Value, it.Cost)
}

// Instance is a knapsack budget plus an insertion-ordered item sequence.
// An Instance is never mutated by a solver; construct it with New.
type Instance struct {
	budget int64
	items  []Item
}

// New validates and returns an instance holding a private copy of items.
//
// Errors: ErrNegativeBudget, ErrNegativeCost, ErrNegativeValue (wrapped with
// the offending item index).
func New(budget int64, items ...Item) (*Instance, error) {
	inst := &Instance{
		budget: budget,
		items:  append([]Item(nil), items...),
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	return inst, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and
// examples with literal data.
func MustNew(budget int64, items ...Item) *Instance {
	inst, err := New(budget, items...)
	if err != nil {
		panic(err)
	}

	return inst
}

// Validate checks the instance invariants: budget ≥ 0, every cost ≥ 0 and
// every value ≥ 0.
func (in *Instance) Validate() error {
	if in.budget < 0 {
		return ErrNegativeBudget
	}
	for i, it := range in.items {
		if it.Cost < 0 {
			return fmt.Errorf("item %d: %w", i, ErrNegativeCost)
		}
		if it.Value < 0 {
			return fmt.Errorf("item %d: %w", i, ErrNegativeValue)
		}
	}

	return nil
}

// Budget returns the knapsack capacity.
func (in *Instance) Budget() int64 { return in.budget }

// Len returns the number of items.
func (in *Instance) Len() int { return len(in.items) }

// At returns the i-th item in insertion order.
func (in *Instance) At(i int) Item { return in.items[i] }

// Items returns a copy of the item sequence.
func (in *Instance) Items() []Item {
	return append([]Item(nil), in.items...)
}

// TotalValue returns the sum of all item values and false if that sum does
// not fit in an int64.
func (in *Instance) TotalValue() (int64, bool) {
	var sum int64
	for _, it := range in.items {
		if sum > math.MaxInt64-it.Value {
			return 0, false
		}
		sum += it.Value
	}

	return sum, true
}

// Evaluate returns the total value and cost of taking counts[i] units of
// item i. ok is false when len(counts) ≠ Len(), a count is negative, or a
// total overflows int64.
func (in *Instance) Evaluate(counts []int64) (value, cost int64, ok bool) {
	if len(counts) != len(in.items) {
		return 0, 0, false
	}
	for i, n := range counts {
		if n < 0 {
			return 0, 0, false
		}
		if n == 0 {
			continue
		}
		v, vok := mulInt64(n, in.items[i].Value)
		c, cok := mulInt64(n, in.items[i].Cost)
		if !vok || !cok || value > math.MaxInt64-v || cost > math.MaxInt64-c {
			return 0, 0, false
		}
		value += v
		cost += c
	}

	return value, cost, true
}

// mulInt64 multiplies two non-negative int64 values and reports overflow.
func mulInt64(a, b int64) (int64, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}

	return int64(lo), true
}
