// Package dp solves the knapsack problem exactly by dynamic programming over
// capacities, as an alternative to branch-and-bound.
//
// What:
//
//   - Solve           bounded (0/1) problem, (n+1)x(B+1) table or one row.
//   - SolveUnbounded  unbounded problem, one row plus a choice array.
//
// Why:
//
//	Run time is O(n·B) regardless of how the values correlate with the
//	costs, so DP is the method of choice for small budgets and strongly
//	correlated instances where branch-and-bound prunes little. It is useless
//	for large budgets: MaxCells refuses tables that would not fit in memory.
//
// Memory modes (see MemoryMode):
//
//	FullTable   O(n·B) cells; reports the chosen items.
//	RollingRow  O(B) cells; reports the optimal value only.
//
// Results use the caller's item order. Counts[i] is 0/1 for Solve and a
// multiplicity for SolveUnbounded.
//
// Errors:
//
//	ErrNilInstance, ErrTableTooLarge, ErrOverflow, ErrUnboundedObjective,
//	instance validation sentinels, and the wrapped context error when the
//	run is canceled. There is no partial result: a DP table is only useful
//	once complete.
package dp
