package cliquetree_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/cliquetree"
	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
)

const tol = 1e-9

// numTol bounds the disagreement with brute-force dense inference.
const numTol = 1e-7

// counter wraps gaussian.Eliminate and counts invocations. When failAt is
// positive, the failAt-th call returns errBoom instead.
type counter struct {
	calls  atomic.Int64
	failAt int64
}

func (c *counter) eliminate(ctx context.Context, g inference.FactorGraph, targets []inference.Key, nrFrontals int) (inference.BayesNet, error) {
	n := c.calls.Add(1)
	if c.failAt > 0 && n == c.failAt {
		return nil, errBoom
	}
	return gaussian.Eliminate(ctx, g, targets, nrFrontals)
}

func (c *counter) count() int { return int(c.calls.Load()) }

var errBoom = errors.New("boom")

// scalar builds p(frontal | parents) over scalar variables.
func scalar(t testing.TB, frontal inference.Key, parents []inference.Key, r float64, s []float64, d float64) *gaussian.Conditional {
	t.Helper()
	dims := make([]int, 1+len(parents))
	for i := range dims {
		dims[i] = 1
	}
	var sm mat.Matrix
	if len(parents) > 0 {
		sm = mat.NewDense(1, len(parents), s)
	}
	c, err := gaussian.NewConditional([]inference.Key{frontal}, parents, dims,
		mat.NewDense(1, 1, []float64{r}), sm, mat.NewVecDense(1, []float64{d}))
	require.NoError(t, err)
	return c
}

// chain3 returns root p(x0), mid p(x1|x0) and leaf p(x2|x1).
func chain3(t testing.TB) (root, mid, leaf *cliquetree.Clique) {
	t.Helper()
	root = cliquetree.NewClique(scalar(t, 0, nil, 2, nil, 1))
	mid = cliquetree.NewClique(scalar(t, 1, []inference.Key{0}, 1.5, []float64{0.5}, 0.3))
	leaf = cliquetree.NewClique(scalar(t, 2, []inference.Key{1}, 1, []float64{-0.7}, 0.2))
	require.NoError(t, root.AddChild(mid))
	require.NoError(t, mid.AddChild(leaf))
	return root, mid, leaf
}

// fork returns a root p(x0) with two branches x1→x3 and x2→x4.
func fork(t testing.TB) (root *cliquetree.Clique, byKey map[inference.Key]*cliquetree.Clique) {
	t.Helper()
	byKey = map[inference.Key]*cliquetree.Clique{
		0: cliquetree.NewClique(scalar(t, 0, nil, 1.2, nil, 0.4)),
		1: cliquetree.NewClique(scalar(t, 1, []inference.Key{0}, 1.1, []float64{0.3}, -0.2)),
		2: cliquetree.NewClique(scalar(t, 2, []inference.Key{0}, 0.9, []float64{-0.6}, 0.5)),
		3: cliquetree.NewClique(scalar(t, 3, []inference.Key{1}, 1.3, []float64{0.8}, 0.1)),
		4: cliquetree.NewClique(scalar(t, 4, []inference.Key{2}, 1.7, []float64{0.2}, -0.9)),
	}
	require.NoError(t, byKey[0].AddChild(byKey[1]))
	require.NoError(t, byKey[0].AddChild(byKey[2]))
	require.NoError(t, byKey[1].AddChild(byKey[3]))
	require.NoError(t, byKey[2].AddChild(byKey[4]))
	return byKey[0], byKey
}

// dense is the brute-force joint of a whole tree in moment form.
type dense struct {
	offsets map[inference.Key]int
	dims    map[inference.Key]int
	mean    *mat.VecDense
	cov     *mat.SymDense
}

// bruteForce multiplies every conditional of the tree into one joint.
func bruteForce(t testing.TB, tree *cliquetree.Tree) *dense {
	t.Helper()
	var graph inference.FactorGraph
	for _, c := range tree.Cliques() {
		graph.Push(c.Conditional().ToFactor())
	}
	joint, err := gaussian.Combine(graph)
	require.NoError(t, err)
	mean, cov, err := joint.Moments()
	require.NoError(t, err)

	d := &dense{offsets: map[inference.Key]int{}, dims: map[inference.Key]int{}, mean: mean, cov: cov}
	var off int
	for i, k := range joint.Keys() {
		d.offsets[k] = off
		d.dims[k] = joint.Dims()[i]
		off += joint.Dims()[i]
	}
	return d
}

// index lists the scalar rows of keys in order.
func (d *dense) index(keys []inference.Key) []int {
	var idx []int
	for _, k := range keys {
		for a := 0; a < d.dims[k]; a++ {
			idx = append(idx, d.offsets[k]+a)
		}
	}
	return idx
}

func (d *dense) sub(rows, cols []int) *mat.Dense {
	out := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			out.Set(i, j, d.cov.At(r, c))
		}
	}
	return out
}

func (d *dense) subMean(rows []int) *mat.VecDense {
	out := mat.NewVecDense(len(rows), nil)
	for i, r := range rows {
		out.SetVec(i, d.mean.AtVec(r))
	}
	return out
}

// requireMarginal checks that graph encodes the joint marginal over its keys.
func (d *dense) requireMarginal(t testing.TB, graph inference.FactorGraph) {
	t.Helper()
	f, err := gaussian.Combine(graph)
	require.NoError(t, err)
	mean, cov, err := f.Moments()
	require.NoError(t, err)

	idx := d.index(f.Keys())
	require.True(t, mat.EqualApprox(cov, d.sub(idx, idx), numTol), "covariance mismatch")
	require.True(t, mat.EqualApprox(mean, d.subMean(idx), numTol), "mean mismatch")
}

// requireConditional checks that c equals p(frontals | given) of the joint,
// where given may include keys c does not list as parents. Every given key
// is evaluated at 1.
func (d *dense) requireConditional(t testing.TB, c *gaussian.Conditional, given []inference.Key) {
	t.Helper()
	fi := d.index(c.Frontals())
	gi := d.index(given)

	var gain mat.Dense // Σ_FG Σ_GG⁻¹
	var chol mat.Cholesky
	sgg := mat.NewSymDense(len(gi), nil)
	for i := range gi {
		for j := i; j < len(gi); j++ {
			sgg.SetSym(i, j, d.cov.At(gi[i], gi[j]))
		}
	}
	require.True(t, chol.Factorize(sgg))
	var x mat.Dense
	require.NoError(t, chol.SolveTo(&x, d.sub(gi, fi)))
	gain.CloneFrom(x.T())

	var condCov mat.Dense
	condCov.Mul(&gain, d.sub(gi, fi))
	condCov.Sub(d.sub(fi, fi), &condCov)

	var precision mat.Dense
	require.NoError(t, precision.Inverse(&condCov))
	require.True(t, mat.EqualApprox(c.Information(), &precision, numTol), "conditional precision mismatch")

	ones := mat.NewVecDense(len(gi), nil)
	for i := range gi {
		ones.SetVec(i, 1)
	}
	var shift mat.VecDense
	shift.SubVec(ones, d.subMean(gi))
	var want mat.VecDense
	want.MulVec(&gain, &shift)
	want.AddVec(&want, d.subMean(fi))

	values := gaussian.Values{}
	for _, k := range c.Parents() {
		v := mat.NewVecDense(d.dims[k], nil)
		for a := 0; a < d.dims[k]; a++ {
			v.SetVec(a, 1)
		}
		values[k] = v
	}
	got, err := c.Solve(values)
	require.NoError(t, err)
	var gotVec []float64
	for _, k := range c.Frontals() {
		gotVec = append(gotVec, got[k].RawVector().Data...)
	}
	require.True(t, mat.EqualApprox(mat.NewVecDense(len(gotVec), gotVec), &want, numTol), "conditional mean mismatch")
}
