package gaussian_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
)

const tol = 1e-9

// randomSPD returns AᵀA + n·I for a seeded random A.
func randomSPD(n int, seed int64) *mat.SymDense {
	rng := rand.New(rand.NewSource(seed))
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, rng.NormFloat64())
		}
	}
	var s mat.SymDense
	s.SymOuterK(1, a.T())
	for i := 0; i < n; i++ {
		s.SetSym(i, i, s.At(i, i)+float64(n))
	}
	return &s
}

func randomVec(n int, seed int64) *mat.VecDense {
	rng := rand.New(rand.NewSource(seed))
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, rng.NormFloat64())
	}
	return v
}

// scalarConditional builds p(x | y) with scalar R, S and d.
func scalarConditional(t *testing.T, x, y inference.Key, r, s, d float64) *gaussian.Conditional {
	t.Helper()
	c, err := gaussian.NewConditional(
		[]inference.Key{x}, []inference.Key{y}, []int{1, 1},
		mat.NewDense(1, 1, []float64{r}), mat.NewDense(1, 1, []float64{s}), mat.NewVecDense(1, []float64{d}),
	)
	require.NoError(t, err)
	return c
}

// covarianceBlock extracts rows/cols [lo, hi) of a covariance.
func covarianceBlock(cov *mat.SymDense, lo, hi int) *mat.Dense {
	return mat.DenseCopyOf(cov.SliceSym(lo, hi))
}
