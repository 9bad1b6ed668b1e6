package bnb

import (
	"sort"

	"github.com/katalvlaran/knapsack/instance"
)

// Ordering is the search view of an instance: the items that can possibly be
// part of a solution, sorted by descending value/cost ratio, plus the
// indirection back to the caller's item positions.
//
// Invariant: len(Perm) == len(Items) and Items[k] == inst.At(Perm[k]).
type Ordering struct {
	Items []instance.Item
	Perm  []int
}

// Len returns the number of kept items.
func (o Ordering) Len() int { return len(o.Items) }

// byRatio implements sort.Interface over an Ordering, descending ratio.
type byRatio struct{ o *Ordering }

func (b byRatio) Len() int           { return len(b.o.Items) }
func (b byRatio) Less(i, j int) bool { return b.o.Items[i].Better(b.o.Items[j]) }
func (b byRatio) Swap(i, j int) {
	b.o.Items[i], b.o.Items[j] = b.o.Items[j], b.o.Items[i]
	b.o.Perm[i], b.o.Perm[j] = b.o.Perm[j], b.o.Perm[i]
}

// Preprocess builds the Ordering of inst:
//  1. items whose cost exceeds the budget are excluded;
//  2. items with zero value are excluded when dropZeroValue is set; items
//     with zero value and zero cost are always excluded, since they compare
//     equal to every other item and would make the ratio order inconsistent;
//  3. the rest are stably sorted by strictly descending ratio, so equal
//     ratios keep insertion order (callers must not depend on it).
//
// The caller's instance is not modified.
//
// Complexity: O(n log n) time, O(n) space.
func Preprocess(inst *instance.Instance, dropZeroValue bool) Ordering {
	var (
		n     = inst.Len()
		limit = inst.Budget()
		o     = Ordering{
			Items: make([]instance.Item, 0, n),
			Perm:  make([]int, 0, n),
		}
	)
	for i := 0; i < n; i++ {
		it := inst.At(i)
		if it.Cost > limit {
			continue
		}
		if it.Value == 0 && (dropZeroValue || it.Cost == 0) {
			continue
		}
		o.Items = append(o.Items, it)
		o.Perm = append(o.Perm, i)
	}
	sort.Stable(byRatio{o: &o})

	return o
}
