package dp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapsack/bnb"
	"github.com/katalvlaran/knapsack/dp"
	"github.com/katalvlaran/knapsack/generator"
	"github.com/katalvlaran/knapsack/instance"
	"github.com/katalvlaran/knapsack/internal/oracle"
)

func classic() *instance.Instance {
	return instance.MustNew(50,
		instance.Item{Value: 60, Cost: 10},
		instance.Item{Value: 100, Cost: 20},
		instance.Item{Value: 120, Cost: 30},
	)
}

// requireConsistent checks Counts against Value/Cost and the budget.
func requireConsistent(t *testing.T, inst *instance.Instance, res dp.Result) {
	t.Helper()
	value, cost, ok := inst.Evaluate(res.Counts)
	require.True(t, ok)
	require.Equal(t, res.Value, value)
	require.Equal(t, res.Cost, cost)
	require.LessOrEqual(t, cost, inst.Budget())
}

func TestSolve_Classic(t *testing.T) {
	inst := classic()
	res, err := dp.Solve(inst)
	require.NoError(t, err)
	require.Equal(t, int64(220), res.Value)
	require.Equal(t, []int64{0, 1, 1}, res.Counts)
	require.Equal(t, int64(4*51), res.Cells)
	requireConsistent(t, inst, res)
}

// TestSolve_ReconstructsFirstItem: the optimum needs item 0, which the last
// reconstruction step must still examine.
func TestSolve_ReconstructsFirstItem(t *testing.T) {
	inst := instance.MustNew(10,
		instance.Item{Value: 9, Cost: 4},
		instance.Item{Value: 5, Cost: 6},
		instance.Item{Value: 4, Cost: 7},
	)
	res, err := dp.Solve(inst)
	require.NoError(t, err)
	require.Equal(t, int64(14), res.Value)
	require.Equal(t, []int64{1, 1, 0}, res.Counts)

	only := instance.MustNew(3, instance.Item{Value: 2, Cost: 3})
	res, err = dp.Solve(only)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, res.Counts)
}

func TestSolve_ZeroBudgetAndZeroCost(t *testing.T) {
	inst := instance.MustNew(0,
		instance.Item{Value: 3, Cost: 1},
		instance.Item{Value: 4, Cost: 0},
	)
	res, err := dp.Solve(inst)
	require.NoError(t, err)
	require.Equal(t, int64(4), res.Value)
	require.Equal(t, []int64{0, 1}, res.Counts)

	res, err = dp.Solve(instance.MustNew(7))
	require.NoError(t, err)
	require.Equal(t, int64(0), res.Value)
	require.Empty(t, res.Counts)
}

func TestSolve_MatchesBruteForceAndBnB(t *testing.T) {
	for _, class := range generator.Classes() {
		for seed := int64(0); seed < 20; seed++ {
			inst, err := generator.Generate(class, 12, generator.WithSeed(seed), generator.WithRange(30))
			require.NoError(t, err)
			want, _ := oracle.Bounded(inst.Items(), inst.Budget())

			res, err := dp.Solve(inst)
			require.NoError(t, err)
			require.Equal(t, want, res.Value, "class=%s seed=%d", class, seed)
			requireConsistent(t, inst, res)

			rolled, err := dp.Solve(inst, dp.WithMemoryMode(dp.RollingRow))
			require.NoError(t, err)
			require.Equal(t, want, rolled.Value)
			require.Nil(t, rolled.Counts)

			b, err := bnb.Solve(inst)
			require.NoError(t, err)
			require.Equal(t, b.Value, res.Value)
		}
	}
}

func TestSolve_TableTooLarge(t *testing.T) {
	inst := instance.MustNew(1_000_000, instance.Item{Value: 1, Cost: 1}, instance.Item{Value: 2, Cost: 3})
	_, err := dp.Solve(inst, dp.WithMaxCells(1_000_000))
	require.ErrorIs(t, err, dp.ErrTableTooLarge)

	// One row of 1_000_001 cells still exceeds the cap.
	_, err = dp.Solve(inst, dp.WithMaxCells(1_000_000), dp.WithMemoryMode(dp.RollingRow))
	require.ErrorIs(t, err, dp.ErrTableTooLarge)

	huge := instance.MustNew(math.MaxInt64, instance.Item{Value: 1, Cost: 1})
	_, err = dp.Solve(huge)
	require.ErrorIs(t, err, dp.ErrTableTooLarge)
}

func TestSolve_Overflow(t *testing.T) {
	inst := instance.MustNew(2,
		instance.Item{Value: math.MaxInt64 - 1, Cost: 1},
		instance.Item{Value: 2, Cost: 1},
	)
	_, err := dp.Solve(inst)
	require.ErrorIs(t, err, dp.ErrOverflow)
}

func TestSolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dp.Solve(classic(), dp.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolve_InvalidInput(t *testing.T) {
	_, err := dp.Solve(nil)
	require.ErrorIs(t, err, dp.ErrNilInstance)
	_, err = dp.SolveUnbounded(nil)
	require.ErrorIs(t, err, dp.ErrNilInstance)
}

func TestSolveUnbounded_Scenarios(t *testing.T) {
	inst := instance.MustNew(17, instance.Item{Value: 10, Cost: 5})
	res, err := dp.SolveUnbounded(inst)
	require.NoError(t, err)
	require.Equal(t, int64(30), res.Value)
	require.Equal(t, []int64{3}, res.Counts)
	require.Equal(t, int64(15), res.Cost)

	mix := instance.MustNew(10,
		instance.Item{Value: 7, Cost: 4},
		instance.Item{Value: 5, Cost: 3},
	)
	res, err = dp.SolveUnbounded(mix)
	require.NoError(t, err)
	require.Equal(t, int64(17), res.Value)
	require.Equal(t, []int64{1, 2}, res.Counts)
	requireConsistent(t, mix, res)
}

func TestSolveUnbounded_MatchesBruteForceAndBnB(t *testing.T) {
	for _, class := range generator.Classes() {
		for seed := int64(0); seed < 15; seed++ {
			inst, err := generator.Generate(class, 6,
				generator.WithSeed(seed), generator.WithRange(20), generator.WithCapacityRatio(0.3))
			require.NoError(t, err)
			want := oracle.Unbounded(inst.Items(), inst.Budget())

			res, err := dp.SolveUnbounded(inst)
			require.NoError(t, err)
			require.Equal(t, want, res.Value, "class=%s seed=%d", class, seed)
			requireConsistent(t, inst, res)

			b, err := bnb.SolveUnbounded(inst)
			require.NoError(t, err)
			require.Equal(t, b.Value, res.Value)
		}
	}
}

func TestSolveUnbounded_Errors(t *testing.T) {
	free := instance.MustNew(5, instance.Item{Value: 1, Cost: 0})
	_, err := dp.SolveUnbounded(free)
	require.ErrorIs(t, err, dp.ErrUnboundedObjective)

	big := instance.MustNew(3, instance.Item{Value: math.MaxInt64 / 2, Cost: 1})
	_, err = dp.SolveUnbounded(big)
	require.ErrorIs(t, err, dp.ErrOverflow)

	worthless := instance.MustNew(5, instance.Item{Value: 0, Cost: 0}, instance.Item{Value: 2, Cost: 2})
	res, err := dp.SolveUnbounded(worthless, dp.WithMemoryMode(dp.RollingRow))
	require.NoError(t, err)
	require.Equal(t, int64(4), res.Value)
	require.Nil(t, res.Counts)
}
