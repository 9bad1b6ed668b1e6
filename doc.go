// Package knapsack is an exact solver for the 0/1 and unbounded knapsack
// problems: pick items, each with a value and a cost, to maximize total
// value without exceeding a budget.
//
// What is in the box?
//
//	• Branch-and-bound: explicit-stack depth-first search with the LP
//	  relaxation bound, exact integer arithmetic, cooperative time limits
//	  and context cancellation that always leave a feasible incumbent.
//	• Dynamic programming: O(n·budget) tables for small budgets and
//	  strongly correlated instances, with a value-only rolling mode.
//	• Instance formats: budget-first text, counted text with optional
//	  optimal flags, unbounded text with an optional optimum, and YAML.
//	• Generators for the classic instance classes, a concurrent benchmark
//	  runner, an HTTP service and a CLI.
//
// Layout:
//
//	instance/   Item, Instance, Variant, parsers and writers
//	bnb/        branch-and-bound (Solve, SolveUnbounded, Search)
//	dp/         dynamic programming (Solve, SolveUnbounded)
//	generator/  random instances (Uncorrelated … SubsetSum)
//	solver/     dispatcher: Config, Solve, Verify, Report
//	internal/   config, logging, metrics, batch runner, HTTP server
//	cmd/        the knapsack binary (solve, gen, bench, serve)
//
// Quick start:
//
//	inst := instance.MustNew(50,
//		instance.Item{Value: 60, Cost: 10},
//		instance.Item{Value: 100, Cost: 20},
//		instance.Item{Value: 120, Cost: 30},
//	)
//	res, err := bnb.Solve(inst, bnb.WithTimeLimit(time.Second))
//	// res.Value == 220, res.Chosen() == [1 2], res.Exhaustive == true
//
// All values, costs and budgets are non-negative int64. Inputs whose
// reachable objective could overflow are rejected with ErrOverflow rather
// than solved approximately.
package knapsack
