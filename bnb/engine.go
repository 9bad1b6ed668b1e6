package bnb

import (
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/knapsack/instance"
)

// engine is the depth-first search state. It is owned by exactly one
// goroutine while running; the only shared fields are stop (read here,
// written by the caller) and best (written here, read by the caller).
//
// The traversal is an explicit state machine:
//
//	extend    scan forward from k, pushing every item that fits while the
//	          bound from that item still beats the incumbent;
//	saturate  the scan ran off the end: record the stack if strictly better;
//	backtrack undo the top frame and resume the scan right after it.
//
// Cancellation is checked once per backtrack, so a stopped search always
// leaves a complete incumbent behind.
type engine struct {
	items []instance.Item // sorted by descending ratio

	value      int64 // value of the current stack
	budgetLeft int64 // budget minus cost of the current stack
	stack      []frame

	bestValue int64 // hot-path copy of best.value
	best      *incumbent
	stop      *atomic.Bool

	stats     Stats
	onImprove func(int64)
	log       logr.Logger
}

func newEngine(items []instance.Item, budget int64, best *incumbent, stop *atomic.Bool, opts Options) *engine {
	return &engine{
		items:      items,
		budgetLeft: budget,
		stack:      make([]frame, 0, len(items)),
		best:       best,
		stop:       stop,
		onImprove:  opts.OnImprove,
		log:        opts.Logger,
	}
}

// push includes count units of items[k].
func (e *engine) push(k int, count int64) {
	it := e.items[k]
	e.value += count * it.Value
	e.budgetLeft -= count * it.Cost
	e.stack = append(e.stack, frame{index: k, count: count})
	e.stats.Nodes++
}

// saturate records the current stack if it is strictly better than the
// incumbent. Equal values never replace it, so the first optimum found in
// traversal order is kept.
func (e *engine) saturate() {
	if e.value <= e.bestValue {
		return
	}
	e.bestValue = e.value
	e.best.replace(e.value, e.stack)
	e.stats.Improvements++
	e.log.V(2).Info("improved incumbent", "value", e.value, "depth", len(e.stack))
	if e.onImprove != nil {
		e.onImprove(e.value)
	}
}

// runBounded explores the 0/1 problem and reports whether it completed.
func (e *engine) runBounded() bool {
	var (
		n      = len(e.items)
		k      = 0
		pruned bool
		it     instance.Item
	)
	for {
		// extend
		pruned = false
		for ; k < n; k++ {
			it = e.items[k]
			if it.Cost > e.budgetLeft {
				continue
			}
			// Later items at this depth have no better ratio, so their bound
			// cannot exceed this one: give up the whole scan.
			if Bound(e.items, k, e.value, e.budgetLeft) <= e.bestValue {
				pruned = true
				e.stats.Prunes++
				break
			}
			e.push(k, 1)
		}

		// saturate
		if !pruned {
			e.saturate()
		}

		// backtrack
		if len(e.stack) == 0 {
			return true
		}
		if e.stop.Load() {
			return false
		}
		top := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		it = e.items[top.index]
		e.value -= it.Value
		e.budgetLeft += it.Cost
		e.stats.Backtracks++
		k = top.index + 1
	}
}

// runUnbounded explores the unbounded problem and reports whether it
// completed. Extend takes as many units of an item as fit at once; backtrack
// gives back a single unit and pops the frame only when its count reaches
// zero, so every smaller multiplicity is revisited in decreasing order. When
// tailBound shows that no smaller count can beat the incumbent, the whole
// frame is popped in one step.
func (e *engine) runUnbounded() bool {
	var (
		n      = len(e.items)
		k      = 0
		pruned bool
		it     instance.Item
	)
	for {
		pruned = false
		for ; k < n; k++ {
			it = e.items[k]
			if it.Cost > e.budgetLeft {
				continue
			}
			if UnboundedBound(e.items, k, e.value, e.budgetLeft) <= e.bestValue {
				pruned = true
				e.stats.Prunes++
				break
			}
			e.push(k, e.budgetLeft/it.Cost)
		}

		if !pruned {
			e.saturate()
		}

		if len(e.stack) == 0 {
			return true
		}
		if e.stop.Load() {
			return false
		}
		top := &e.stack[len(e.stack)-1]
		it = e.items[top.index]
		e.value -= it.Value
		e.budgetLeft += it.Cost
		top.count--
		k = top.index + 1
		if top.count > 0 && e.tailBound(k) <= e.bestValue {
			// Every unit given back trades Value for Cost·ratio of a later
			// item, which is never more, so no smaller count can win either.
			e.value -= top.count * it.Value
			e.budgetLeft += top.count * it.Cost
			top.count = 0
			e.stats.Prunes++
		}
		if top.count == 0 {
			e.stack = e.stack[:len(e.stack)-1]
		}
		e.stats.Backtracks++
	}
}

// tailBound bounds every completion of the current stack that uses only
// items[from:] after any number of units of the top frame are given back: the
// remaining budget spent at the best ratio among items[from:].
func (e *engine) tailBound(from int) int64 {
	if from >= len(e.items) {
		return e.value
	}
	it := e.items[from]

	return addSat(e.value, fracFloor(e.budgetLeft, it.Value, it.Cost))
}
