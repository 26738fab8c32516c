// Package builder provides internal helpers that turn a topology into
// Gaussian conditionals.
package builder

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
)

// pickSeparator chooses min(cfg.separator, len(pool)) keys of pool,
// returned sorted. With an RNG the choice is a random subset; without one
// it is the leading keys of pool.
// Complexity: O(|pool| log |pool|).
func pickSeparator(cfg builderConfig, pool []inference.Key) []inference.Key {
	k := min(cfg.separator, len(pool))
	if k == 0 {
		return nil
	}
	out := make([]inference.Key, k)
	if cfg.rng == nil {
		copy(out, pool[:k])
	} else {
		for i, j := range cfg.rng.Perm(len(pool))[:k] {
			out[i] = pool[j]
		}
	}
	return inference.SortedKeys(out)
}

// newConditional draws R, S and d from cfg.coefFn, in that order and
// row-major, and assembles p(frontals | separator).
func newConditional(cfg builderConfig, frontals, separator []inference.Key) (*gaussian.Conditional, error) {
	f := len(frontals) * cfg.dim
	p := len(separator) * cfg.dim

	dims := make([]int, len(frontals)+len(separator))
	for i := range dims {
		dims[i] = cfg.dim
	}

	r := mat.NewDense(f, f, nil)
	for i := 0; i < f; i++ {
		r.Set(i, i, MinDiagonal+math.Abs(cfg.coefFn(cfg.rng)))
		for j := i + 1; j < f; j++ {
			r.Set(i, j, cfg.coefFn(cfg.rng))
		}
	}

	var s mat.Matrix
	if p > 0 {
		sd := mat.NewDense(f, p, nil)
		for i := 0; i < f; i++ {
			for j := 0; j < p; j++ {
				sd.Set(i, j, cfg.coefFn(cfg.rng))
			}
		}
		s = sd
	}

	d := mat.NewVecDense(f, nil)
	for i := 0; i < f; i++ {
		d.SetVec(i, cfg.coefFn(cfg.rng))
	}

	return gaussian.NewConditional(frontals, separator, dims, r, s, d)
}
