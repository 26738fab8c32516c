// SPDX-License-Identifier: MIT
// Package: bayestree/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • keyFn      = DefaultKeyFn        (0, 1, 2, ...)
//   • rng        = nil                 (pure unless seeded)
//   • coefFn     = DefaultCoefficientFn
//   • frontals   = DefaultFrontals
//   • separator  = DefaultSeparator
//   • dim        = DefaultDim

package builder

import (
	"math/rand"
)

// builderConfig aggregates all knobs used by Build and the constructors.
// It is passed by VALUE (immutable to callers).
type builderConfig struct {
	// Key strategy: variable index -> key.
	keyFn KeyFn
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand
	// Source of R, S and d entries.
	coefFn CoefficientFn

	frontals  int // frontal keys per clique, ≥1
	separator int // maximum separator size, ≥0
	dim       int // dimension of every variable, ≥1
}

// newBuilderConfig constructs a config with deterministic defaults and
// applies all options in order (last wins).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		keyFn:     DefaultKeyFn,
		coefFn:    DefaultCoefficientFn,
		frontals:  DefaultFrontals,
		separator: DefaultSeparator,
		dim:       DefaultDim,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
