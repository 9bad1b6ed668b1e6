package bnb

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"
)

var (
	// ErrNilInstance is returned when a nil *instance.Instance is passed to a solver.
	ErrNilInstance = errors.New("bnb: instance is nil")

	// ErrNegativeTimeLimit is returned for a time limit below zero.
	ErrNegativeTimeLimit = errors.New("bnb: negative time limit")

	// ErrOverflow indicates that the largest reachable objective value of the
	// instance does not fit in an int64. The instance is rejected before the
	// search starts.
	ErrOverflow = errors.New("bnb: objective value exceeds int64 range")

	// ErrUnboundedObjective is returned by the unbounded solver when an item
	// has zero cost and positive value: its optimum is infinite.
	ErrUnboundedObjective = errors.New("bnb: zero-cost item with positive value makes the unbounded objective infinite")
)

// StopReason tells why a search ended.
type StopReason int

const (
	// StopCompleted: the search visited or pruned every state; the result is optimal.
	StopCompleted StopReason = iota

	// StopDeadline: the time limit elapsed first.
	StopDeadline

	// StopCanceled: Options.Ctx was canceled or Search.Stop was called.
	StopCanceled
)

// String returns a short name for r.
func (r StopReason) String() string {
	switch r {
	case StopCompleted:
		return "completed"
	case StopDeadline:
		return "deadline"
	case StopCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Options configures a branch-and-bound search.
// Use DefaultOptions and the With* helpers; the zero value is not meaningful
// for Ctx and Logger.
type Options struct {
	// Ctx allows external cancellation; defaults to context.Background().
	// Cancellation is cooperative: it is observed at the next backtrack.
	Ctx context.Context

	// TimeLimit bounds the wall-clock time of the search. Zero disables it.
	// When both TimeLimit is zero and Ctx cannot be canceled, the search runs
	// synchronously on the calling goroutine.
	TimeLimit time.Duration

	// DropZeroValue removes items with Value == 0 during preprocessing.
	// Such items never improve a solution. Default true. The unbounded
	// solver always drops them.
	DropZeroValue bool

	// OnImprove, if non-nil, is called from the search goroutine each time a
	// strictly better solution value is recorded.
	OnImprove func(value int64)

	// Logger receives a per-run summary at V(1) and improvements at V(2).
	// Defaults to logr.Discard().
	Logger logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Options with a background context, no time limit,
// zero-value items dropped, no hook and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		TimeLimit:     0,
		DropZeroValue: true,
		OnImprove:     nil,
		Logger:        logr.Discard(),
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTimeLimit sets the search time budget; 0 disables it.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		o.TimeLimit = d
	}
}

// WithDropZeroValue toggles removal of zero-value items.
func WithDropZeroValue(drop bool) Option {
	return func(o *Options) {
		o.DropZeroValue = drop
	}
}

// WithOnImprove installs fn as the improvement hook.
func WithOnImprove(fn func(value int64)) Option {
	return func(o *Options) {
		o.OnImprove = fn
	}
}

// WithLogger sets the logger used for run summaries.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Stats are search counters, valid once the search has returned.
type Stats struct {
	// Nodes counts stack pushes (inclusion decisions).
	Nodes int64
	// Backtracks counts pops of the search stack.
	Backtracks int64
	// Prunes counts forward scans abandoned because the bound could not beat the incumbent.
	Prunes int64
	// Improvements counts strict improvements of the incumbent.
	Improvements int64
}

// Result is the outcome of a search, expressed over the caller's original
// item positions.
type Result struct {
	// Value is the total value of the returned selection.
	Value int64
	// Cost is the total cost of the returned selection (≤ budget).
	Cost int64
	// Counts[i] is the number of units of original item i in the selection:
	// 0 or 1 for the bounded problem.
	Counts []int64
	// Exhaustive is true when the search completed and Value is optimal.
	Exhaustive bool
	// Stop tells why the search ended.
	Stop StopReason
	// Stats holds the search counters.
	Stats Stats
}

// Taken reports whether original item i is part of the selection.
func (r Result) Taken(i int) bool { return r.Counts[i] > 0 }

// Count returns the number of units of original item i in the selection.
func (r Result) Count(i int) int64 { return r.Counts[i] }

// Chosen returns the original indices of selected items in ascending order.
func (r Result) Chosen() []int {
	out := make([]int, 0)
	for i, c := range r.Counts {
		if c > 0 {
			out = append(out, i)
		}
	}

	return out
}
