// SPDX-License-Identifier: MIT
// Package: knapsack/generator
//
// generate.go: Pisinger-style knapsack instance classes.
//
// Classes (R = coefficient range, costs w, values p):
//   • Uncorrelated:              w, p ~ U[1,R] independently.
//   • WeaklyCorrelated:          w ~ U[1,R], p ~ U[w−R/10, w+R/10], p ≥ 1.
//   • StronglyCorrelated:        w ~ U[1,R], p = w + R/10.
//   • InverseStronglyCorrelated: p ~ U[1,R], w = p + R/10.
//   • SubsetSum:                 w ~ U[1,R], p = w.
// Budget = ⌊h · Σw⌋ with h the capacity ratio.
//
// Correlated classes are the hard ones for branch-and-bound: ratios are
// nearly equal, so the relaxation bound prunes little.

package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/katalvlaran/knapsack/instance"
)

// Class selects the value/cost correlation of generated items.
type Class int

const (
	Uncorrelated              Class = iota // independent value and cost
	WeaklyCorrelated                       // value within ±R/10 of cost
	StronglyCorrelated                     // value = cost + R/10
	InverseStronglyCorrelated              // cost = value + R/10
	SubsetSum                              // value = cost
)

var classNames = []string{
	"uncorrelated",
	"weakly-correlated",
	"strongly-correlated",
	"inverse-strongly-correlated",
	"subset-sum",
}

// String returns the canonical class name.
func (c Class) String() string {
	if c >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}

	return fmt.Sprintf("Class(%d)", int(c))
}

// Classes returns every supported class in declaration order.
func Classes() []Class {
	return []Class{Uncorrelated, WeaklyCorrelated, StronglyCorrelated, InverseStronglyCorrelated, SubsetSum}
}

// ParseClass resolves a class by its canonical name.
func ParseClass(name string) (Class, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, s := range classNames {
		if s == name {
			return Class(i), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownClass)
}

// Generate builds an n-item instance of the given class.
//
// Errors: ErrBadSize (n < 0), ErrNeedRandSource (no WithSeed/WithRand),
// ErrUnknownClass.
//
// Complexity: O(n) time and space.
func Generate(class Class, n int, opts ...Option) (*instance.Instance, error) {
	cfg := newConfig(opts...)
	if class < 0 || int(class) >= len(classNames) {
		return nil, fmt.Errorf("%d: %w", int(class), ErrUnknownClass)
	}
	if n < 0 {
		return nil, generatorErrorf(class, ErrBadSize, "n=%d", n)
	}
	if cfg.rng == nil {
		return nil, generatorErrorf(class, ErrNeedRandSource, "no seed")
	}

	var (
		items   = make([]instance.Item, n)
		spread  = cfg.r / 10
		sumCost int64
	)
	for i := range items {
		items[i] = draw(class, cfg.rng, cfg.r, spread)
		sumCost += items[i].Cost
	}
	budget := int64(cfg.capacityRatio * float64(sumCost))

	return instance.New(budget, items...)
}

// draw samples one item of the given class.
func draw(class Class, rng *rand.Rand, r, spread int64) instance.Item {
	uniform := func(lo, hi int64) int64 { return lo + rng.Int63n(hi-lo+1) }

	switch class {
	case WeaklyCorrelated:
		w := uniform(1, r)
		p := uniform(w-spread, w+spread)
		if p < 1 {
			p = 1
		}
		return instance.Item{Value: p, Cost: w}
	case StronglyCorrelated:
		w := uniform(1, r)
		return instance.Item{Value: w + spread, Cost: w}
	case InverseStronglyCorrelated:
		p := uniform(1, r)
		return instance.Item{Value: p, Cost: p + spread}
	case SubsetSum:
		w := uniform(1, r)
		return instance.Item{Value: w, Cost: w}
	default:
		return instance.Item{Value: uniform(1, r), Cost: uniform(1, r)}
	}
}
