package solver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/knapsack/bnb"
	"github.com/katalvlaran/knapsack/dp"
	"github.com/katalvlaran/knapsack/instance"
)

// Algo selects the exact method used by Solve.
type Algo int

const (
	// BranchAndBound is the depth-first search with the LP relaxation bound.
	// It honors TimeLimit and may return a partial result.
	BranchAndBound Algo = iota

	// DynamicProgramming fills a table over capacities. It ignores TimeLimit
	// except through context cancellation, and is refused for tables larger
	// than Config.MaxCells.
	DynamicProgramming
)

// String returns "bnb" or "dp".
func (a Algo) String() string {
	switch a {
	case BranchAndBound:
		return "bnb"
	case DynamicProgramming:
		return "dp"
	default:
		return fmt.Sprintf("Algo(%d)", int(a))
	}
}

// ParseAlgo resolves an algorithm name.
func ParseAlgo(name string) (Algo, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bnb", "bb", "branch-and-bound":
		return BranchAndBound, nil
	case "dp", "dynamic", "dynamic-programming":
		return DynamicProgramming, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnsupportedAlgorithm)
	}
}

var (
	// ErrUnsupportedAlgorithm indicates an unknown Algo value or name.
	ErrUnsupportedAlgorithm = errors.New("solver: unsupported algorithm")

	// ErrNegativeTimeLimit indicates Config.TimeLimit < 0.
	ErrNegativeTimeLimit = errors.New("solver: negative time limit")

	// ErrOptimumMismatch indicates an exhaustive result that disagrees with a
	// known optimum, or any result that exceeds it.
	ErrOptimumMismatch = errors.New("solver: value differs from known optimum")

	// ErrInfeasible indicates a reported selection that breaks the budget,
	// the variant, or its own Value/Cost.
	ErrInfeasible = errors.New("solver: infeasible selection")
)

// Config selects and tunes the solver.
//
// Fields:
//   - Algo, Variant  which method and which problem.
//   - TimeLimit      branch-and-bound wall-clock limit; 0 = none.
//   - DropZeroValue  branch-and-bound preprocessing switch.
//   - MaxCells       DP allocation cap; 0 = dp.DefaultMaxCells.
//   - MemoryMode     DP storage mode.
//   - Logger         run logger; zero value = discard.
//   - Recorder       metrics sink; nil = none.
type Config struct {
	Algo          Algo
	Variant       instance.Variant
	TimeLimit     time.Duration
	DropZeroValue bool
	MaxCells      int64
	MemoryMode    dp.MemoryMode
	Logger        logr.Logger
	Recorder      Recorder
}

// DefaultConfig returns branch-and-bound on the 0/1 problem with no limit.
func DefaultConfig() Config {
	return Config{
		Algo:          BranchAndBound,
		Variant:       instance.Bounded,
		DropZeroValue: true,
		MaxCells:      dp.DefaultMaxCells,
		MemoryMode:    dp.FullTable,
		Logger:        logr.Discard(),
	}
}

// Report is the algorithm-independent outcome of Solve.
//
// Counts is indexed by the caller's item order (nil for a DP run in
// RollingRow mode). Exhaustive is always true for DP. Stats is filled by
// branch-and-bound only; Cells by DP only.
type Report struct {
	Algo       Algo
	Variant    instance.Variant
	Value      int64
	Cost       int64
	Counts     []int64
	Exhaustive bool
	Stop       bnb.StopReason
	Elapsed    time.Duration
	Stats      bnb.Stats
	Cells      int64
}

// Recorder receives one observation per Solve call. Implementations must be
// safe for concurrent use.
type Recorder interface {
	ObserveSolve(rep Report)
	ObserveFailure(algo Algo, variant instance.Variant, err error)
}
