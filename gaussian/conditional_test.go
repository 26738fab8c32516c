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

func TestNewConditional_Validation(t *testing.T) {
	one := mat.NewDense(1, 1, []float64{1})
	d := mat.NewVecDense(1, []float64{0})

	_, err := gaussian.NewConditional(nil, nil, nil, one, nil, d)
	assert.ErrorIs(t, err, gaussian.ErrEmptyFactor)

	_, err = gaussian.NewConditional([]inference.Key{1}, []inference.Key{2}, []int{1, 1}, one, nil, d)
	assert.ErrorIs(t, err, gaussian.ErrShape, "parents need S")

	_, err = gaussian.NewConditional([]inference.Key{1}, nil, []int{1}, one, one, d)
	assert.ErrorIs(t, err, gaussian.ErrShape, "S without parents")

	_, err = gaussian.NewConditional([]inference.Key{1}, nil, []int{1}, mat.NewDense(1, 1, []float64{0}), nil, d)
	assert.ErrorIs(t, err, gaussian.ErrIndeterminant)

	lower := mat.NewDense(2, 2, []float64{1, 0, 3, 1})
	_, err = gaussian.NewConditional([]inference.Key{1}, nil, []int{2}, lower, nil, mat.NewVecDense(2, nil))
	assert.ErrorIs(t, err, gaussian.ErrNotUpperTriangular)

	_, err = gaussian.NewConditional([]inference.Key{1}, []inference.Key{1}, []int{1, 1}, one, one, d)
	assert.ErrorIs(t, err, gaussian.ErrDuplicateKey)
}

func TestConditional_ToFactor(t *testing.T) {
	c := scalarConditional(t, 1, 2, 2, 1, 4)

	f, ok := c.ToFactor().(*gaussian.Factor)
	require.True(t, ok)
	assert.Equal(t, []inference.Key{1, 2}, f.Keys())

	want := mat.NewSymDense(2, []float64{4, 2, 2, 1})
	assert.True(t, mat.EqualApprox(want, f.Information(), tol))
	assert.True(t, mat.EqualApprox(mat.NewVecDense(2, []float64{8, 4}), f.InformationVector(), tol))
	assert.InDelta(t, 4.0, c.Information().At(0, 0), tol)
}

func TestConditional_AccessorsAndRekey(t *testing.T) {
	c := scalarConditional(t, 10, 20, 2, 1, 4)
	assert.Equal(t, []inference.Key{10}, c.Frontals())
	assert.Equal(t, []inference.Key{20}, c.Parents())
	assert.Equal(t, []inference.Key{10, 20}, c.Keys())
	assert.Equal(t, []int{1, 1}, c.Dims())

	r, err := c.Rekey(map[inference.Key]inference.Key{10: 0, 20: 1})
	require.NoError(t, err)
	assert.Equal(t, []inference.Key{0}, r.Frontals())
	assert.Equal(t, []inference.Key{1}, r.Parents())

	back, err := r.Rekey(map[inference.Key]inference.Key{0: 10, 1: 20})
	require.NoError(t, err)
	assert.True(t, c.Equals(back, 0))
}

func TestConditional_Equals(t *testing.T) {
	a := scalarConditional(t, 1, 2, 2, 1, 4)
	b := scalarConditional(t, 1, 2, 2, 1, 4+1e-12)
	c := scalarConditional(t, 1, 2, 2, 1, 4.1)

	assert.True(t, a.Equals(a, 0))
	assert.True(t, a.Equals(b, 1e-9))
	assert.False(t, a.Equals(c, 1e-9))
	assert.False(t, a.Equals(nil, 1e-9))
}

func TestConditional_Solve(t *testing.T) {
	c := scalarConditional(t, 1, 2, 2, 1, 4)

	x, err := c.Solve(gaussian.Values{2: mat.NewVecDense(1, []float64{2})})
	require.NoError(t, err)
	// 2x + 1·2 = 4 → x = 1
	assert.InDelta(t, 1.0, x[1].AtVec(0), tol)

	_, err = c.Solve(gaussian.Values{})
	assert.ErrorIs(t, err, gaussian.ErrMissingValue)
}

func TestConditional_Print(t *testing.T) {
	c := scalarConditional(t, inference.Symbol('x', 1), inference.Symbol('x', 0), 2, 1, 4)
	var buf bytes.Buffer
	c.Print(&buf, "clique", inference.SymbolFormatter)
	assert.Contains(t, buf.String(), "clique p(x1 | x0)")
	assert.Contains(t, buf.String(), "S =")
}
