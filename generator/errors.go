// SPDX-License-Identifier: MIT
// Package: knapsack/generator
//
// errors.go: sentinel errors for the generator package.
//
// Error policy:
//   • Only package-level sentinels are exposed; branch with errors.Is.
//   • Context is attached with %w at the call site, never baked into the
//     sentinel text.
//   • Generate never panics; option constructors panic on programmer error.

package generator

import (
	"errors"
	"fmt"
)

// ErrBadSize indicates a negative item count.
var ErrBadSize = errors.New("generator: invalid item count")

// ErrNeedRandSource indicates that no RNG was configured (use WithSeed or WithRand).
var ErrNeedRandSource = errors.New("generator: rng is required")

// ErrUnknownClass indicates an unsupported instance class.
var ErrUnknownClass = errors.New("generator: unknown class")

// generatorErrorf prefixes a wrapped sentinel with the class name:
// "<class>: <message>: <sentinel>".
func generatorErrorf(class Class, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", class, fmt.Sprintf(format, args...), err)
}
