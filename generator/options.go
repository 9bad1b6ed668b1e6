// SPDX-License-Identifier: MIT
// Package: knapsack/generator
//
// options.go: functional options and deterministic defaults.
//
// Contract:
//   • Options are functional (type Option func(*config)), applied in order,
//     last one wins.
//   • Option constructors VALIDATE and PANIC on meaningless inputs; Generate
//     itself only returns sentinel errors.
//   • Determinism is explicit: randomness comes only from WithSeed/WithRand.

package generator

import "math/rand"

// Deterministic defaults.
const (
	defaultRange         = int64(1000) // coefficients drawn from [1, R]
	defaultCapacityRatio = 0.5         // budget = ratio · Σ cost
)

// config aggregates all knobs used by Generate. Passed by value.
type config struct {
	rng           *rand.Rand
	r             int64
	capacityRatio float64
}

// Option customizes Generate.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		rng:           nil,
		r:             defaultRange,
		capacityRatio: defaultCapacityRatio,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed creates a deterministic RNG from seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generator: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithRange sets the coefficient range R (≥ 10 so that R/10 ≥ 1).
// Panics if R < 10.
func WithRange(r int64) Option {
	if r < 10 {
		panic("generator: WithRange(R<10)")
	}
	return func(c *config) {
		c.r = r
	}
}

// WithCapacityRatio sets the budget as a fraction h ∈ (0, 1] of the total
// item cost. Panics outside that interval.
func WithCapacityRatio(h float64) Option {
	if !(h > 0 && h <= 1) {
		panic("generator: WithCapacityRatio(h∉(0,1])")
	}
	return func(c *config) {
		c.capacityRatio = h
	}
}
