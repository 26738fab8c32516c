// Package builder provides the coefficient distributions used to fill the
// R, S and d blocks of generated conditionals.
package builder

import (
	"fmt"
	"math/rand"
)

// CoefficientFn produces one conditional entry given an optional RNG.
// It must be deterministic for a given RNG state.
type CoefficientFn func(rng *rand.Rand) float64

// DefaultCoefficientFn samples N(0,1) when an RNG is present and returns
// DefaultCoefficient otherwise.
// Complexity: O(1). Never panics.
func DefaultCoefficientFn(rng *rand.Rand) float64 {
	if rng == nil {
		return DefaultCoefficient
	}
	return rng.NormFloat64()
}

// ConstantCoefficientFn returns a CoefficientFn that always yields value.
func ConstantCoefficientFn(value float64) CoefficientFn {
	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformCoefficientFn samples uniformly in [min, max). Panics if max < min.
// Without an RNG it yields the midpoint.
func UniformCoefficientFn(min, max float64) CoefficientFn {
	if max < min {
		panic(fmt.Sprintf("UniformCoefficientFn: require min ≤ max, got min=%g, max=%g", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil || max == min {
			return (min + max) / 2
		}
		return min + rng.Float64()*(max-min)
	}
}

// NormalCoefficientFn samples N(mean, stddev²). Panics if stddev < 0.
// Without an RNG it yields mean.
func NormalCoefficientFn(mean, stddev float64) CoefficientFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalCoefficientFn: stddev must be ≥ 0, got %f", stddev))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return mean
		}
		return rng.NormFloat64()*stddev + mean
	}
}

// WithConstantCoefficients sets every entry to v via ConstantCoefficientFn.
func WithConstantCoefficients(v float64) BuilderOption {
	return WithCoefficientFn(ConstantCoefficientFn(v))
}

// WithUniformCoefficients sets entries ∼ U[min,max) via UniformCoefficientFn.
func WithUniformCoefficients(min, max float64) BuilderOption {
	return WithCoefficientFn(UniformCoefficientFn(min, max))
}

// WithNormalCoefficients sets entries ∼ N(mean,stddev²) via NormalCoefficientFn.
func WithNormalCoefficients(mean, stddev float64) BuilderOption {
	return WithCoefficientFn(NormalCoefficientFn(mean, stddev))
}
