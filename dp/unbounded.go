package dp

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/katalvlaran/knapsack/instance"
)

// ctxStride is how many capacities the unbounded sweep processes between
// context checks.
const ctxStride = 4096

// noChoice marks a capacity whose best value is carried over from w-1.
const noChoice = -1

// SolveUnbounded returns the exact optimum of the unbounded problem.
//
// Recurrence over a single row, w = 0..B:
//
//	best[w] = max(best[w-1], max over items with c ≤ w of best[w-c] + v)
//
// Items are scanned in caller order and only a strictly better candidate
// replaces the carried value, so among equal optima the earliest item wins.
// With FullTable, choice[w] records the item that produced best[w]
// (noChoice when it was carried from w-1); reconstruction walks w from B
// down to 0 following it.
//
// Complexity: O(n·B) time, O(B) memory.
func SolveUnbounded(inst *instance.Instance, opts ...Option) (Result, error) {
	o, err := prepare(inst, opts)
	if err != nil {
		return Result{}, err
	}
	var (
		n      = inst.Len()
		budget = inst.Budget()
		width  = budget + 1
		rows   = int64(2)
	)
	if o.MemoryMode == RollingRow {
		rows = 1
	}
	for i := 0; i < n; i++ {
		if it := inst.At(i); it.Cost == 0 && it.Value > 0 {
			return Result{}, ErrUnboundedObjective
		}
	}
	if !fits(rows, width, o.MaxCells) {
		return Result{}, fmt.Errorf("%d x %d cells: %w", rows, width, ErrTableTooLarge)
	}
	if err = checkUnboundedRange(inst); err != nil {
		return Result{}, err
	}

	var (
		best   = make([]int64, width)
		choice []int
		w      int64
	)
	if o.MemoryMode == FullTable {
		choice = make([]int, width)
		choice[0] = noChoice
	}
	for w = 1; w < width; w++ {
		if w%ctxStride == 0 {
			if err = o.Ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("dp: interrupted at capacity %d: %w", w, err)
			}
		}
		best[w] = best[w-1]
		pick := noChoice
		for i := 0; i < n; i++ {
			it := inst.At(i)
			if it.Cost == 0 || it.Cost > w {
				continue
			}
			if cand := best[w-it.Cost] + it.Value; cand > best[w] {
				best[w] = cand
				pick = i
			}
		}
		if choice != nil {
			choice[w] = pick
		}
	}

	res := Result{Value: best[budget], Cells: rows * width}
	if choice != nil {
		res.Counts = make([]int64, n)
		for w = budget; w > 0; {
			i := choice[w]
			if i == noChoice {
				w--
				continue
			}
			it := inst.At(i)
			res.Counts[i]++
			res.Cost += it.Cost
			w -= it.Cost
		}
	}
	o.Logger.V(1).Info("dynamic programming finished",
		"variant", instance.Unbounded.String(),
		"items", n,
		"budget", budget,
		"mode", o.MemoryMode.String(),
		"cells", res.Cells,
		"value", res.Value,
	)

	return res, nil
}

// checkUnboundedRange: best[w] ≤ w·max(v/c), so budget·v/c must fit for
// every item that fits at least once.
func checkUnboundedRange(inst *instance.Instance) error {
	budget := inst.Budget()
	for i := 0; i < inst.Len(); i++ {
		it := inst.At(i)
		if it.Cost == 0 || it.Cost > budget {
			continue
		}
		hi, lo := bits.Mul64(uint64(budget), uint64(it.Value))
		if hi >= uint64(it.Cost) {
			return ErrOverflow
		}
		if q, _ := bits.Div64(hi, lo, uint64(it.Cost)); q > math.MaxInt64 {
			return ErrOverflow
		}
	}

	return nil
}
