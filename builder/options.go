// SPDX-License-Identifier: MIT
// Package: bayestree/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Generators themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"
)

// BuilderOption customizes generation by mutating a builderConfig before
// the tree is built.
type BuilderOption func(*builderConfig)

// WithKeyScheme sets the variable index -> key mapping. Panics on nil.
func WithKeyScheme(fn KeyFn) BuilderOption {
	if fn == nil {
		panic("builder: WithKeyScheme(nil)")
	}
	return func(c *builderConfig) {
		c.keyFn = fn
	}
}

// WithSymbolKeys is shorthand for WithKeyScheme(SymbolKeyFn(chr)).
func WithSymbolKeys(chr byte) BuilderOption {
	return WithKeyScheme(SymbolKeyFn(chr))
}

// WithRand provides an explicit RNG for stochastic choices.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
// Use this in tests and examples to lock outcomes.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithCoefficientFn overrides the source of conditional entries.
// The function receives the (possibly nil) RNG. Panics on nil.
func WithCoefficientFn(fn CoefficientFn) BuilderOption {
	if fn == nil {
		panic("builder: WithCoefficientFn(nil)")
	}
	return func(c *builderConfig) {
		c.coefFn = fn
	}
}

// WithFrontals sets the number of frontal keys per clique. Panics if n < 1.
func WithFrontals(n int) BuilderOption {
	if n < 1 {
		panic("builder: WithFrontals(n<1)")
	}
	return func(c *builderConfig) {
		c.frontals = n
	}
}

// WithSeparator caps the separator size of non-root cliques. 0 yields a
// forest of independent cliques glued only by structure. Panics if n < 0.
func WithSeparator(n int) BuilderOption {
	if n < 0 {
		panic("builder: WithSeparator(n<0)")
	}
	return func(c *builderConfig) {
		c.separator = n
	}
}

// WithDim sets the dimension of every variable. Panics if d < 1.
func WithDim(d int) BuilderOption {
	if d < 1 {
		panic("builder: WithDim(d<1)")
	}
	return func(c *builderConfig) {
		c.dim = d
	}
}
