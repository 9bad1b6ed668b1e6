package bnb_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapsack/bnb"
	"github.com/katalvlaran/knapsack/generator"
	"github.com/katalvlaran/knapsack/instance"
)

// classic returns the textbook instance: optimum 220 with items 1 and 2.
func classic() *instance.Instance {
	return instance.MustNew(50,
		instance.Item{Value: 60, Cost: 10},
		instance.Item{Value: 100, Cost: 20},
		instance.Item{Value: 120, Cost: 30},
	)
}

// hardEqualRatio builds n items with Value == Cost, all even, and an odd
// budget. The bound then equals the budget at almost every state while no
// selection can reach it, so pruning is nearly impossible and exhaustive
// search is exponential.
func hardEqualRatio(n int, seed int64) *instance.Instance {
	rng := rand.New(rand.NewSource(seed))
	items := make([]instance.Item, n)
	var sum int64
	for i := range items {
		c := 2 * (1 + rng.Int63n(100))
		items[i] = instance.Item{Value: c, Cost: c}
		sum += c
	}

	return instance.MustNew(sum/2|1, items...)
}

// smallRandom returns a reproducible small instance of the given class.
func smallRandom(t *testing.T, class generator.Class, n int, seed int64) *instance.Instance {
	t.Helper()
	inst, err := generator.Generate(class, n, generator.WithSeed(seed), generator.WithRange(20))
	require.NoError(t, err)

	return inst
}

// requireFeasible checks the Result against the instance: counts are
// consistent with Value/Cost, the cost is within the budget, and the bounded
// problem takes each item at most once.
func requireFeasible(t *testing.T, inst *instance.Instance, res bnb.Result, variant instance.Variant) {
	t.Helper()
	value, cost, ok := inst.Evaluate(res.Counts)
	require.True(t, ok, "counts must evaluate")
	require.Equal(t, res.Value, value, "value must match counts")
	require.Equal(t, res.Cost, cost, "cost must match counts")
	require.LessOrEqual(t, cost, inst.Budget(), "selection must fit the budget")
	if variant == instance.Bounded {
		for i, c := range res.Counts {
			require.LessOrEqual(t, c, int64(1), "item %d taken more than once", i)
		}
	}
}
