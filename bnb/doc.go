// Package bnb solves the 0/1 and unbounded knapsack problems exactly with a
// depth-first branch-and-bound search guided by the fractional (LP)
// relaxation bound.
//
// What:
//
//   - Preprocess: drop items that can never fit (and zero-value items), sort
//     the rest by descending value/cost ratio, and keep a permutation back to
//     the caller's item positions.
//   - Bound / UnboundedBound: relaxation upper bounds from a partial state.
//   - Solve / SolveUnbounded: iterative (explicit-stack) search with
//     bound-based pruning, optional time limit and cooperative cancellation.
//   - Search: the same run as an object that can be observed (Best) and
//     stopped (Stop) from other goroutines.
//
// Search outline (bounded):
//
//	extend:    scan items k, k+1, … ; skip what does not fit;
//	           if Bound(k) ≤ best → abandon the scan (later items have no
//	           better ratio, hence no better bound) and backtrack;
//	           otherwise include item k.
//	saturate:  the scan ran off the end → record the stack if value > best.
//	backtrack: pop the last included item, undo it, resume the scan after it.
//
// The unbounded variant pushes ⌊budgetLeft/cost⌋ units at once and gives
// them back one at a time on backtrack.
//
// Guarantees:
//
//   - Exhaustive results are optimal; among equal optima the first one met in
//     traversal order is kept.
//   - A truncated search (deadline, cancellation) returns the best complete
//     solution found so far with Exhaustive == false. This is not an error.
//   - The search itself is single-threaded and never recurses, so deep
//     instances cannot exhaust the goroutine stack.
//
// Complexity:
//
//   - Preprocessing: O(n log n).
//   - Search: exponential in the worst case; each extend step costs O(n) for
//     the bound. Memory O(n).
//
// Errors:
//
//   - ErrNilInstance, ErrNegativeTimeLimit   invalid arguments
//   - ErrOverflow                            objective could exceed int64
//   - ErrUnboundedObjective                  free valuable item (unbounded only)
//   - instance.Err*                          invalid instance state
package bnb
