package bnb

import (
	"context"
	"errors"
	"math"
	"math/bits"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/knapsack/instance"
)

// Search is a single branch-and-bound run. It may be observed and stopped
// from other goroutines while Run is in progress: Best returns a consistent
// snapshot of the incumbent at any time, and Stop requests a cooperative halt.
type Search struct {
	inst    *instance.Instance
	variant instance.Variant
	ord     Ordering
	opts    Options

	best incumbent
	stop atomic.Bool
	ran  atomic.Bool
}

// NewSearch validates inst and prepares a search for the given variant.
//
// Errors:
//   - ErrNilInstance, ErrNegativeTimeLimit;
//   - instance validation sentinels (instance.ErrNegativeBudget, …);
//   - ErrUnboundedObjective for an unbounded instance with a free valuable item;
//   - ErrOverflow when the reachable objective does not fit in int64.
func NewSearch(inst *instance.Instance, variant instance.Variant, opts ...Option) (*Search, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.TimeLimit < 0 {
		return nil, ErrNegativeTimeLimit
	}
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}

	s := &Search{inst: inst, variant: variant, opts: o}
	switch variant {
	case instance.Bounded:
		s.ord = Preprocess(inst, o.DropZeroValue)
	case instance.Unbounded:
		for i := 0; i < inst.Len(); i++ {
			if it := inst.At(i); it.Cost == 0 && it.Value > 0 {
				return nil, ErrUnboundedObjective
			}
		}
		s.ord = Preprocess(inst, true)
	default:
		return nil, errors.New("bnb: unknown variant")
	}
	if err := checkRange(s.ord, variant, inst.Budget()); err != nil {
		return nil, err
	}

	return s, nil
}

// Solve runs the bounded (0/1) branch-and-bound on inst.
//
// The returned Result is optimal when Result.Exhaustive is true. When the
// time limit elapses or the context is canceled first, the best solution
// found so far is returned with Exhaustive == false and a nil error: a
// truncated search is a documented partial result, not a failure.
func Solve(inst *instance.Instance, opts ...Option) (Result, error) {
	s, err := NewSearch(inst, instance.Bounded, opts...)
	if err != nil {
		return Result{}, err
	}

	return s.Run(), nil
}

// SolveUnbounded runs the unbounded branch-and-bound on inst.
// See Solve for the partial-result contract.
func SolveUnbounded(inst *instance.Instance, opts ...Option) (Result, error) {
	s, err := NewSearch(inst, instance.Unbounded, opts...)
	if err != nil {
		return Result{}, err
	}

	return s.Run(), nil
}

// Stop asks a running search to halt at its next backtrack. It is safe to
// call from any goroutine, before or during Run.
func (s *Search) Stop() { s.stop.Store(true) }

// Best returns the incumbent as a Result. It can be called concurrently with
// Run; Exhaustive is always false and Stats are empty in this view.
func (s *Search) Best() Result {
	_, frames := s.best.snapshot()

	return s.materialize(frames)
}

// Run executes the search once and returns its result. A Search cannot be
// rerun: further calls return the first run's incumbent with Stop set to
// StopCanceled.
//
// Without a time limit and with a context that cannot be canceled, the search
// runs on the calling goroutine. Otherwise it runs on a background goroutine
// while Run waits for completion, the deadline, or cancellation; on the
// latter two it raises the stop flag and joins the search before reading the
// incumbent, so the returned solution is always complete and feasible.
func (s *Search) Run() Result {
	if !s.ran.CompareAndSwap(false, true) {
		r := s.Best()
		r.Stop = StopCanceled
		return r
	}

	var (
		start      = time.Now()
		eng        = newEngine(s.ord.Items, s.inst.Budget(), &s.best, &s.stop, s.opts)
		exhaustive bool
		reason     = StopCompleted
	)
	search := eng.runBounded
	if s.variant == instance.Unbounded {
		search = eng.runUnbounded
	}

	ctx := s.opts.Ctx
	if s.opts.TimeLimit <= 0 && ctx.Done() == nil {
		exhaustive = search()
		if !exhaustive {
			reason = StopCanceled
		}
	} else {
		var cancel context.CancelFunc
		if s.opts.TimeLimit > 0 {
			ctx, cancel = context.WithTimeout(ctx, s.opts.TimeLimit)
		} else {
			ctx, cancel = context.WithCancel(ctx)
		}
		defer cancel()

		done := make(chan bool, 1)
		go func() { done <- search() }()

		select {
		case exhaustive = <-done:
		case <-ctx.Done():
			s.stop.Store(true)
			exhaustive = <-done
		}
		if !exhaustive {
			reason = StopCanceled
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && s.opts.Ctx.Err() == nil {
				reason = StopDeadline
			}
		}
	}

	_, frames := s.best.snapshot()
	res := s.materialize(frames)
	res.Exhaustive = exhaustive
	res.Stop = reason
	res.Stats = eng.stats

	s.opts.Logger.V(1).Info("branch-and-bound finished",
		"variant", s.variant.String(),
		"items", s.inst.Len(),
		"kept", s.ord.Len(),
		"value", res.Value,
		"exhaustive", exhaustive,
		"stop", reason.String(),
		"nodes", eng.stats.Nodes,
		"prunes", eng.stats.Prunes,
		"elapsed", time.Since(start),
	)

	return res
}

// checkRange rejects instances whose best reachable objective may overflow.
// Bounded: the sum of kept values bounds every state and every bound value.
// Unbounded: budget·maxRatio bounds them, the first kept item having the
// maximal ratio. Costs cannot overflow: the running cost never exceeds the
// budget.
func checkRange(o Ordering, variant instance.Variant, budget int64) error {
	if variant == instance.Bounded {
		var sum int64
		for _, it := range o.Items {
			if sum > math.MaxInt64-it.Value {
				return ErrOverflow
			}
			sum += it.Value
		}
		return nil
	}
	if len(o.Items) == 0 {
		return nil
	}
	top := o.Items[0]
	hi, lo := bits.Mul64(uint64(budget), uint64(top.Value))
	if hi >= uint64(top.Cost) {
		return ErrOverflow
	}
	if q, _ := bits.Div64(hi, lo, uint64(top.Cost)); q > math.MaxInt64 {
		return ErrOverflow
	}

	return nil
}
