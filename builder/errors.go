// SPDX-License-Identifier: MIT
// Package: bayestree/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with `%w` and the constructor name.
//   • Generators never panic at runtime; validation panics are confined to
//     option constructors (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewCliques indicates a clique count below the constructor minimum.
var ErrTooFewCliques = errors.New("builder: too few cliques")

// ErrNeedRandSource indicates that a stochastic constructor requires a
// non-nil *rand.Rand (set WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrBadParent indicates a parent index that does not precede its clique,
// or a root that is not at index 0.
var ErrBadParent = errors.New("builder: invalid parent index")

// ErrConstructFailed indicates that a conditional or tree could not be
// assembled from the generated parameters.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrUnknownShape indicates a shape name ParseShape does not recognize.
var ErrUnknownShape = errors.New("builder: unknown shape")

// builderErrorf prefixes err with the constructor name, keeping errors.Is.
func builderErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
