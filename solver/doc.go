// Package solver is the single entry point over the exact knapsack methods.
//
// It routes an instance to branch-and-bound (package bnb) or dynamic
// programming (package dp) for either variant, and returns one Report shape
// for both. Around the run it adds the concerns library callers usually
// want together: a tracing span, a logr summary, and a Recorder hook for
// metrics.
//
// Usage:
//
//	cfg := solver.DefaultConfig()
//	cfg.Algo = solver.DynamicProgramming
//	cfg.Variant = instance.Unbounded
//	rep, err := solver.Solve(ctx, inst, cfg)
//	if err == nil {
//		err = solver.Verify(rep, parsed)
//	}
//
// Verify is used by the CLI and the batch runner to check results against
// the optima shipped with benchmark files.
package solver
