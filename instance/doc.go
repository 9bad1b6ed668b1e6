// Package instance defines the knapsack item and instance model shared by
// every solver in this module, together with the line-oriented text formats
// instances are usually distributed in.
//
// What:
//
//   - Item: an immutable (Value, Cost) pair with a derived Ratio.
//   - Instance: a Budget plus an insertion-ordered sequence of Items.
//   - Parse / ParseFile: readers for the budget-first, counted and unbounded
//     text formats, plus a YAML document form.
//   - Write: the inverse of Parse, used by the instance generator.
//
// Why:
//
//   - Solvers work on derived, reordered copies of the items; keeping the
//     caller's instance immutable is what makes the mapping back to original
//     item positions stable.
//   - Validation happens once, at construction, so no solver discovers a
//     negative budget or cost in the middle of a search.
//
// Numeric model:
//
//	Value and Cost are int64. Products that may exceed 64 bits (ratio
//	comparisons, fractional bounds) are computed in 128 bits via math/bits.
//
// Errors:
//
//   - ErrNegativeBudget, ErrNegativeCost, ErrNegativeValue  invalid instance state
//   - ErrMalformed                                          unreadable text input
//   - ErrCountMismatch                                      declared n ≠ items read
//   - ErrUnknownFormat                                      unsupported format name
package instance
