// Package dp defines options, modes and results for the dynamic-programming
// knapsack solvers.
package dp

import (
	"context"

	"github.com/go-logr/logr"
)

// MemoryMode controls how the bounded solver stores its DP table.
//
//   - FullTable  keep the entire (n+1)x(budget+1) table in memory.
//     Allows value + reconstruction of the chosen items.
//     Memory: O(n·budget).
//
//   - RollingRow keep a single row updated in place.
//     Memory drops to O(budget), but the selection cannot be recovered:
//     Result.Counts is nil. Use when only the optimal value matters.
//
// The unbounded solver always works on one row; FullTable adds the choice
// array it needs for reconstruction.
type MemoryMode int

const (
	// FullTable mode: store all rows, support reconstruction.
	FullTable MemoryMode = iota

	// RollingRow mode: one row, value only.
	RollingRow
)

// String returns the mode name.
func (m MemoryMode) String() string {
	if m == RollingRow {
		return "rolling-row"
	}

	return "full-table"
}

// DefaultMaxCells caps the number of int64 cells a run may allocate
// (1<<26 cells = 512 MiB).
const DefaultMaxCells int64 = 1 << 26

// Options configures Solve and SolveUnbounded.
//
// Fields:
//   - Ctx        checked once per row (bounded) or every few thousand
//     capacities (unbounded); cancellation aborts with an error.
//   - MaxCells   upper bound on allocated table cells; exceeding it
//     returns ErrTableTooLarge before any allocation.
//   - MemoryMode FullTable (default) or RollingRow.
//   - Logger     receives a V(1) summary per run.
type Options struct {
	Ctx        context.Context
	MaxCells   int64
	MemoryMode MemoryMode
	Logger     logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns full-table mode with the default cell cap.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		MaxCells:   DefaultMaxCells,
		MemoryMode: FullTable,
		Logger:     logr.Discard(),
	}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Ctx = ctx
	}
}

// WithMaxCells overrides the allocation cap. Non-positive values are ignored.
func WithMaxCells(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxCells = n
		}
	}
}

// WithMemoryMode selects FullTable or RollingRow.
func WithMemoryMode(m MemoryMode) Option {
	return func(o *Options) {
		o.MemoryMode = m
	}
}

// WithLogger sets the run logger.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Result is the optimum found by a DP solver. It mirrors the
// branch-and-bound result shape: Counts is indexed by the caller's item
// positions. In RollingRow mode Counts is nil and Cost is zero.
type Result struct {
	Value  int64
	Cost   int64
	Counts []int64
	Cells  int64 // table cells allocated
}
