package dp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/knapsack/instance"
)

// Bounded 0/1 knapsack by dynamic programming over capacities.
//
// Algorithm Outline (FullTable):
//  1. Let n = number of items, B = budget. Allocate (n+1)x(B+1) table T.
//  2. T[0][w] = 0 for every w.
//  3. For i = 1..n, with item (v, c) = items[i-1]:
//     T[i][w] = T[i-1][w]                             if c > w
//     T[i][w] = max(T[i-1][w], T[i-1][w-c] + v)       otherwise
//  4. value = T[n][B].
//  5. Reconstruction: w = B; for i = n-1 down to 0, item i is taken iff
//     T[i+1][w] != T[i][w], in which case w -= c_i. The loop runs over
//     every item including item 0.
//
// RollingRow keeps one row and iterates w downwards so each item is used at
// most once; steps 4 and 5 collapse to reading row[B].
//
// Complexity:
//
//	Time   = O(n·B)
//	Memory = O(n·B) (FullTable) or O(B) (RollingRow)
//
// Errors:
//   - ErrNilInstance          nil instance.
//   - ErrTableTooLarge        the table would exceed Options.MaxCells.
//   - ErrOverflow             the reachable objective does not fit in int64.
//   - ErrUnboundedObjective   unbounded problem with a free valuable item.
//   - instance validation sentinels.
//   - ctx.Err(), wrapped, when the context ends mid-run.
var (
	// ErrNilInstance indicates a nil *instance.Instance.
	ErrNilInstance = errors.New("dp: nil instance")

	// ErrTableTooLarge indicates the DP table would exceed the cell cap.
	ErrTableTooLarge = errors.New("dp: table exceeds MaxCells")

	// ErrOverflow indicates the objective may exceed int64.
	ErrOverflow = errors.New("dp: objective may overflow int64")

	// ErrUnboundedObjective indicates a zero-cost item with positive value
	// in the unbounded problem.
	ErrUnboundedObjective = errors.New("dp: unbounded objective (free item with positive value)")
)

// Solve returns the exact optimum of the bounded (0/1) problem.
func Solve(inst *instance.Instance, opts ...Option) (Result, error) {
	o, err := prepare(inst, opts)
	if err != nil {
		return Result{}, err
	}
	var (
		n      = inst.Len()
		budget = inst.Budget()
		width  = budget + 1
		rows   = int64(n + 1)
	)
	if o.MemoryMode == RollingRow {
		rows = 1
	}
	if !fits(rows, width, o.MaxCells) {
		return Result{}, fmt.Errorf("%d x %d cells: %w", rows, width, ErrTableTooLarge)
	}
	if err = checkBoundedRange(inst); err != nil {
		return Result{}, err
	}

	var res Result
	if o.MemoryMode == RollingRow {
		res, err = solveRolling(inst, o)
	} else {
		res, err = solveTable(inst, o)
	}
	if err != nil {
		return Result{}, err
	}
	o.Logger.V(1).Info("dynamic programming finished",
		"variant", instance.Bounded.String(),
		"items", n,
		"budget", budget,
		"mode", o.MemoryMode.String(),
		"cells", res.Cells,
		"value", res.Value,
	)

	return res, nil
}

// solveTable fills the full table and reconstructs the selection.
func solveTable(inst *instance.Instance, o Options) (Result, error) {
	var (
		n      = inst.Len()
		budget = inst.Budget()
		width  = int(budget + 1)
		table  = make([]int64, (n+1)*width)
		w      int
	)
	row := func(i int) []int64 { return table[i*width : (i+1)*width] }

	for i := 0; i < n; i++ {
		if err := o.Ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("dp: interrupted at item %d: %w", i, err)
		}
		var (
			it   = inst.At(i)
			prev = row(i)
			cur  = row(i + 1)
			c    = int(min(it.Cost, budget+1))
		)
		copy(cur, prev)
		for w = c; w < width; w++ {
			if cand := prev[w-c] + it.Value; cand > cur[w] {
				cur[w] = cand
			}
		}
	}

	res := Result{
		Value:  row(n)[width-1],
		Counts: make([]int64, n),
		Cells:  int64(len(table)),
	}
	w = width - 1
	for i := n - 1; i >= 0; i-- {
		if row(i + 1)[w] == row(i)[w] {
			continue
		}
		it := inst.At(i)
		res.Counts[i] = 1
		res.Cost += it.Cost
		w -= int(it.Cost)
	}

	return res, nil
}

// solveRolling keeps a single row; the downward sweep over w reads values
// of the previous item before they are overwritten.
func solveRolling(inst *instance.Instance, o Options) (Result, error) {
	var (
		n      = inst.Len()
		budget = inst.Budget()
		cur    = make([]int64, budget+1)
	)
	for i := 0; i < n; i++ {
		if err := o.Ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("dp: interrupted at item %d: %w", i, err)
		}
		it := inst.At(i)
		if it.Cost > budget {
			continue
		}
		for w := budget; w >= it.Cost; w-- {
			if cand := cur[w-it.Cost] + it.Value; cand > cur[w] {
				cur[w] = cand
			}
		}
	}

	return Result{Value: cur[budget], Cells: int64(len(cur))}, nil
}

// prepare validates the instance and resolves options.
func prepare(inst *instance.Instance, opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if inst == nil {
		return o, ErrNilInstance
	}
	if err := inst.Validate(); err != nil {
		return o, err
	}

	return o, nil
}

// fits reports whether rows·width ≤ limit without overflowing.
func fits(rows, width, limit int64) bool {
	if width <= 0 || width > limit {
		return false
	}

	return rows <= limit/width
}

// checkBoundedRange: every table entry is a subset sum of the values of
// items that fit the budget.
func checkBoundedRange(inst *instance.Instance) error {
	var sum int64
	for i := 0; i < inst.Len(); i++ {
		it := inst.At(i)
		if it.Cost > inst.Budget() {
			continue
		}
		if sum > math.MaxInt64-it.Value {
			return ErrOverflow
		}
		sum += it.Value
	}

	return nil
}
