// Package bnb_test provides runnable examples for the branch-and-bound
// solvers. Each example prints a stable // Output: block.
package bnb_test

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/knapsack/bnb"
	"github.com/katalvlaran/knapsack/instance"
)

// ExampleSolve solves the textbook 0/1 instance.
func ExampleSolve() {
	inst := instance.MustNew(50,
		instance.Item{Value: 60, Cost: 10},
		instance.Item{Value: 100, Cost: 20},
		instance.Item{Value: 120, Cost: 30},
	)

	res, err := bnb.Solve(inst)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("value:", res.Value)
	fmt.Println("cost:", res.Cost)
	fmt.Println("chosen:", res.Chosen())
	fmt.Println("optimal:", res.Exhaustive)
	// Output:
	// value: 220
	// cost: 50
	// chosen: [1 2]
	// optimal: true
}

// ExampleSolveUnbounded takes as many copies of each item as pay off.
func ExampleSolveUnbounded() {
	inst := instance.MustNew(17, instance.Item{Value: 10, Cost: 5})

	res, err := bnb.SolveUnbounded(inst)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("value:", res.Value)
	fmt.Println("copies:", res.Count(0))
	// Output:
	// value: 30
	// copies: 3
}

// ExampleNewSearch shows a bounded run with a deadline and a progress hook.
// The small instance completes well before the limit.
func ExampleNewSearch() {
	inst := instance.MustNew(10,
		instance.Item{Value: 7, Cost: 4},
		instance.Item{Value: 5, Cost: 3},
		instance.Item{Value: 6, Cost: 5},
	)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := bnb.NewSearch(inst, instance.Bounded,
		bnb.WithContext(ctx),
		bnb.WithOnImprove(func(v int64) { fmt.Println("improved:", v) }),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res := s.Run()
	fmt.Println("value:", res.Value, "stop:", res.Stop)
	// Output:
	// improved: 12
	// improved: 13
	// value: 13 stop: completed
}
