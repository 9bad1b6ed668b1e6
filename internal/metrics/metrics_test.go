package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapsack/bnb"
	"github.com/katalvlaran/knapsack/dp"
	"github.com/katalvlaran/knapsack/instance"
	"github.com/katalvlaran/knapsack/internal/metrics"
	"github.com/katalvlaran/knapsack/solver"
)

func TestSolverMetrics_RecordsThroughSolver(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	cfg := solver.DefaultConfig()
	cfg.Recorder = m
	inst := instance.MustNew(50,
		instance.Item{Value: 60, Cost: 10},
		instance.Item{Value: 100, Cost: 20},
		instance.Item{Value: 120, Cost: 30},
	)
	rep, err := solver.Solve(context.Background(), inst, cfg)
	require.NoError(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(m.SolvesTotal.WithLabelValues("bnb", "bounded", "completed")))
	require.Equal(t, float64(rep.Stats.Nodes), testutil.ToFloat64(m.NodesTotal.WithLabelValues("bounded")))

	cfg.Algo = solver.DynamicProgramming
	cfg.MaxCells = 1
	_, err = solver.Solve(context.Background(), inst, cfg)
	require.Error(t, err)
	require.Equal(t, 1.0, testutil.ToFloat64(m.FailuresTotal.WithLabelValues("dp", "bounded", "table_too_large")))

	count, err := testutil.GatherAndCount(reg, "knapsack_solve_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestReason(t *testing.T) {
	tests := map[error]string{
		bnb.ErrOverflow:                     "overflow",
		fmt.Errorf("x: %w", dp.ErrOverflow): "overflow",
		dp.ErrUnboundedObjective:            "unbounded_objective",
		dp.ErrTableTooLarge:                 "table_too_large",
		solver.ErrUnsupportedAlgorithm:      "bad_config",
		instance.ErrNegativeCost:            "invalid_instance",
		errors.New("boom"):                  "other",
	}
	for err, want := range tests {
		require.Equal(t, want, metrics.Reason(err), err.Error())
	}
}
