package solver

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/knapsack/bnb"
	"github.com/katalvlaran/knapsack/dp"
	"github.com/katalvlaran/knapsack/instance"
)

const tracerName = "github.com/katalvlaran/knapsack/solver"

// Solve validates cfg, routes inst to the selected algorithm and returns a
// Report.
//
// ctx bounds the run for both algorithms: branch-and-bound returns its
// incumbent with Exhaustive == false, DP returns the wrapped context error.
// The run is wrapped in a span named "knapsack.solve" on the global tracer
// provider; with no provider installed this is a no-op.
//
// Errors: ErrUnsupportedAlgorithm, ErrNegativeTimeLimit, and whatever the
// selected package returns (bnb.ErrOverflow, dp.ErrTableTooLarge, …).
func Solve(ctx context.Context, inst *instance.Instance, cfg Config) (Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "knapsack.solve",
		trace.WithAttributes(
			attribute.String("knapsack.algo", cfg.Algo.String()),
			attribute.String("knapsack.variant", cfg.Variant.String()),
		))
	defer span.End()

	log := cfg.Logger.WithValues("algo", cfg.Algo.String(), "variant", cfg.Variant.String())

	start := time.Now()
	rep, err := route(ctx, inst, cfg)
	rep.Elapsed = time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error(err, "solve failed")
		if cfg.Recorder != nil {
			cfg.Recorder.ObserveFailure(cfg.Algo, cfg.Variant, err)
		}
		return Report{}, err
	}

	span.SetAttributes(
		attribute.Int("knapsack.items", inst.Len()),
		attribute.Int64("knapsack.budget", inst.Budget()),
		attribute.Int64("knapsack.value", rep.Value),
		attribute.Bool("knapsack.exhaustive", rep.Exhaustive),
		attribute.String("knapsack.stop", rep.Stop.String()),
		attribute.Int64("knapsack.nodes", rep.Stats.Nodes),
	)
	span.SetStatus(codes.Ok, "")
	log.V(1).Info("solved",
		"items", inst.Len(),
		"value", rep.Value,
		"exhaustive", rep.Exhaustive,
		"elapsed", rep.Elapsed,
	)
	if cfg.Recorder != nil {
		cfg.Recorder.ObserveSolve(rep)
	}

	return rep, nil
}

// route runs the configured algorithm and converts its result.
func route(ctx context.Context, inst *instance.Instance, cfg Config) (Report, error) {
	if cfg.TimeLimit < 0 {
		return Report{}, ErrNegativeTimeLimit
	}
	rep := Report{Algo: cfg.Algo, Variant: cfg.Variant}

	switch cfg.Algo {
	case BranchAndBound:
		opts := []bnb.Option{
			bnb.WithContext(ctx),
			bnb.WithTimeLimit(cfg.TimeLimit),
			bnb.WithDropZeroValue(cfg.DropZeroValue),
			bnb.WithLogger(cfg.Logger),
		}
		var (
			res bnb.Result
			err error
		)
		if cfg.Variant == instance.Unbounded {
			res, err = bnb.SolveUnbounded(inst, opts...)
		} else {
			res, err = bnb.Solve(inst, opts...)
		}
		if err != nil {
			return Report{}, err
		}
		rep.Value, rep.Cost, rep.Counts = res.Value, res.Cost, res.Counts
		rep.Exhaustive, rep.Stop, rep.Stats = res.Exhaustive, res.Stop, res.Stats

	case DynamicProgramming:
		opts := []dp.Option{
			dp.WithContext(ctx),
			dp.WithMaxCells(cfg.MaxCells),
			dp.WithMemoryMode(cfg.MemoryMode),
			dp.WithLogger(cfg.Logger),
		}
		var (
			res dp.Result
			err error
		)
		if cfg.Variant == instance.Unbounded {
			res, err = dp.SolveUnbounded(inst, opts...)
		} else {
			res, err = dp.Solve(inst, opts...)
		}
		if err != nil {
			return Report{}, err
		}
		rep.Value, rep.Cost, rep.Counts, rep.Cells = res.Value, res.Cost, res.Counts, res.Cells
		rep.Exhaustive, rep.Stop = true, bnb.StopCompleted

	default:
		return Report{}, ErrUnsupportedAlgorithm
	}

	return rep, nil
}
