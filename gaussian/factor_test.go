package gaussian_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
)

func TestNewFactor_Validation(t *testing.T) {
	info := mat.NewSymDense(2, []float64{2, 0, 0, 2})
	eta := mat.NewVecDense(2, []float64{1, 1})

	_, err := gaussian.NewFactor(nil, nil, info, eta)
	assert.ErrorIs(t, err, gaussian.ErrEmptyFactor)

	_, err = gaussian.NewFactor([]inference.Key{1, 1}, []int{1, 1}, info, eta)
	assert.ErrorIs(t, err, gaussian.ErrDuplicateKey)

	_, err = gaussian.NewFactor([]inference.Key{1}, []int{1}, info, eta)
	assert.ErrorIs(t, err, gaussian.ErrShape)

	_, err = gaussian.NewFactor([]inference.Key{1, 2}, []int{1, 0}, info, eta)
	assert.ErrorIs(t, err, gaussian.ErrShape)

	f, err := gaussian.NewFactor([]inference.Key{1, 2}, []int{1, 1}, info, eta)
	require.NoError(t, err)
	assert.Equal(t, []inference.Key{1, 2}, f.Keys())
	dim, ok := f.Dim(2)
	assert.True(t, ok)
	assert.Equal(t, 1, dim)
	_, ok = f.Dim(3)
	assert.False(t, ok)
}

func TestFactor_CopiesInputs(t *testing.T) {
	info := mat.NewSymDense(1, []float64{2})
	eta := mat.NewVecDense(1, []float64{1})
	f, err := gaussian.NewFactor([]inference.Key{1}, []int{1}, info, eta)
	require.NoError(t, err)

	info.SetSym(0, 0, 99)
	eta.SetVec(0, 99)
	assert.Equal(t, 2.0, f.Information().At(0, 0))
	assert.Equal(t, 1.0, f.InformationVector().AtVec(0))
}

func TestFactor_RekeyAndEquals(t *testing.T) {
	f, err := gaussian.NewPrior(inference.Symbol('x', 1), []float64{1, 2}, 0.5)
	require.NoError(t, err)

	g, err := f.Rekey(map[inference.Key]inference.Key{inference.Symbol('x', 1): 0})
	require.NoError(t, err)
	assert.Equal(t, []inference.Key{0}, g.Keys())
	assert.False(t, f.Equals(g, tol))

	back, err := g.Rekey(map[inference.Key]inference.Key{0: inference.Symbol('x', 1)})
	require.NoError(t, err)
	assert.True(t, f.Equals(back, tol))
	assert.Equal(t, inference.Symbol('x', 1), f.Keys()[0], "rekey must not touch the receiver")

	_, err = f.Rekey(map[inference.Key]inference.Key{})
	assert.ErrorIs(t, err, inference.ErrKeyNotMapped)
}

func TestFactor_Moments(t *testing.T) {
	f, err := gaussian.NewPrior(3, []float64{1, -2}, 2)
	require.NoError(t, err)

	mean, cov, err := f.Moments()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mean.AtVec(0), tol)
	assert.InDelta(t, -2.0, mean.AtVec(1), tol)
	assert.InDelta(t, 4.0, cov.At(0, 0), tol)
	assert.InDelta(t, 0.0, cov.At(0, 1), tol)

	singular, err := gaussian.NewFactor([]inference.Key{1}, []int{1}, mat.NewSymDense(1, []float64{0}), mat.NewVecDense(1, []float64{0}))
	require.NoError(t, err)
	_, _, err = singular.Moments()
	assert.ErrorIs(t, err, gaussian.ErrIndeterminant)
}

func TestFactor_Print(t *testing.T) {
	f, err := gaussian.NewPrior(inference.Symbol('x', 0), []float64{1}, 1)
	require.NoError(t, err)
	var buf bytes.Buffer
	f.Print(&buf, "prior", inference.SymbolFormatter)
	assert.Contains(t, buf.String(), "prior Gaussian factor on [x0]")
}
