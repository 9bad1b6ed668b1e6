package solver

import (
	"fmt"

	"github.com/katalvlaran/knapsack/instance"
)

// Verify checks rep against the parsed input it was computed from.
//
// Feasibility (skipped when rep.Counts is nil): Counts must evaluate to
// rep.Value and rep.Cost, fit the budget, and take each item at most once
// for the bounded variant. Violations wrap ErrInfeasible.
//
// Optimality (only when p.HasOptimum): an exhaustive result must equal the
// known optimum and a partial one must not exceed it. Violations wrap
// ErrOptimumMismatch.
func Verify(rep Report, p *instance.Parsed) error {
	inst := p.Instance
	if rep.Counts != nil {
		value, cost, ok := inst.Evaluate(rep.Counts)
		switch {
		case !ok:
			return fmt.Errorf("counts do not evaluate: %w", ErrInfeasible)
		case value != rep.Value || cost != rep.Cost:
			return fmt.Errorf("counts give value %d cost %d, report says %d/%d: %w",
				value, cost, rep.Value, rep.Cost, ErrInfeasible)
		case cost > inst.Budget():
			return fmt.Errorf("cost %d exceeds budget %d: %w", cost, inst.Budget(), ErrInfeasible)
		}
		if rep.Variant == instance.Bounded {
			for i, c := range rep.Counts {
				if c > 1 {
					return fmt.Errorf("item %d taken %d times: %w", i, c, ErrInfeasible)
				}
			}
		}
	}

	if !p.HasOptimum {
		return nil
	}
	if rep.Value > p.Optimum || (rep.Exhaustive && rep.Value != p.Optimum) {
		return fmt.Errorf("got %d, want %d: %w", rep.Value, p.Optimum, ErrOptimumMismatch)
	}

	return nil
}
