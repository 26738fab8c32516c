// SPDX-License-Identifier: MIT

package gaussian

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/inference"
)

var tracer = otel.Tracer("github.com/katalvlaran/bayestree/gaussian")

// Eliminate is the Gaussian inference.EliminateFunc.
//
// Implementation:
//   - Stage 1: validate nrFrontals and targets, collect per-key dims.
//   - Stage 2: assemble the joint information form ordered as
//     [eliminated keys ascending, targets as given].
//   - Stage 3: marginalize the eliminated block by Schur complement.
//   - Stage 4: Cholesky-factor the frontal block into R, then
//     S = R·Λ_FF⁻¹Λ_FS and d = R·Λ_FF⁻¹η_F.
//
// Returns an empty BayesNet when nrFrontals is 0, otherwise a single
// Conditional p(targets[:nrFrontals] | targets[nrFrontals:]).
//
// Errors:
//   - ErrBadFrontalCount, ErrDuplicateKey, ErrMissingTarget (validation).
//   - ErrUnsupportedFactor, ErrDimensionMismatch (graph contents).
//   - ErrIndeterminant (eliminated or frontal block not positive definite).
//   - ctx.Err() if the context is already done.
//
// Complexity: O(n³) in the summed dimension of the graph's keys.
func Eliminate(ctx context.Context, graph inference.FactorGraph, targets []inference.Key, nrFrontals int) (inference.BayesNet, error) {
	ctx, span := tracer.Start(ctx, "gaussian.Eliminate", trace.WithAttributes(
		attribute.Int("factors", graph.Size()),
		attribute.Int("targets", len(targets)),
		attribute.Int("frontals", nrFrontals),
	))
	defer span.End()

	bn, err := eliminate(ctx, graph, targets, nrFrontals)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, gaussianErrorf(opEliminate, err)
	}
	return bn, nil
}

func eliminate(ctx context.Context, graph inference.FactorGraph, targets []inference.Key, nrFrontals int) (inference.BayesNet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if nrFrontals < 0 || nrFrontals > len(targets) {
		return nil, fmt.Errorf("nrFrontals %d with %d targets: %w", nrFrontals, len(targets), ErrBadFrontalCount)
	}
	if len(inference.SortedKeys(targets)) != len(targets) {
		return nil, fmt.Errorf("targets %v: %w", targets, ErrDuplicateKey)
	}
	if nrFrontals == 0 {
		return inference.BayesNet{}, nil
	}

	dims, err := collectDims(graph)
	if err != nil {
		return nil, err
	}
	for _, k := range targets {
		if _, ok := dims[k]; !ok {
			return nil, fmt.Errorf("target %d: %w", k, ErrMissingTarget)
		}
	}

	eliminated := inference.Difference(keysOf(dims), targets)
	order := append(slices.Clone(eliminated), targets...)
	joint, eta, err := assemble(graph, order, dims)
	if err != nil {
		return nil, err
	}

	var ne int
	for _, k := range eliminated {
		ne += dims[k]
	}
	n, _ := joint.Dims()

	// Λ_TT and η_T, reduced by the Schur complement of Λ_EE when needed.
	lambda := mat.DenseCopyOf(joint.Slice(ne, n, ne, n))
	etaT := mat.VecDenseCopyOf(eta.SliceVec(ne, n))
	if ne > 0 {
		var chol mat.Cholesky
		if !chol.Factorize(symOf(joint.Slice(0, ne, 0, ne))) {
			return nil, fmt.Errorf("marginalizing %d keys: %w", len(eliminated), ErrIndeterminant)
		}
		lambdaTE := joint.Slice(ne, n, 0, ne)

		var x mat.Dense
		if err = chol.SolveTo(&x, joint.Slice(0, ne, ne, n)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndeterminant, err)
		}
		var y mat.VecDense
		if err = chol.SolveVecTo(&y, eta.SliceVec(0, ne)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndeterminant, err)
		}

		var schur mat.Dense
		schur.Mul(lambdaTE, &x)
		lambda.Sub(lambda, &schur)

		var ty mat.VecDense
		ty.MulVec(lambdaTE, &y)
		etaT.SubVec(etaT, &ty)
	}

	var f int
	for _, k := range targets[:nrFrontals] {
		f += dims[k]
	}
	t := n - ne

	var chol mat.Cholesky
	if !chol.Factorize(symOf(lambda.Slice(0, f, 0, f))) {
		return nil, fmt.Errorf("frontals %v: %w", targets[:nrFrontals], ErrIndeterminant)
	}
	var u mat.TriDense
	chol.UTo(&u)
	r := mat.DenseCopyOf(&u)

	var y mat.VecDense
	if err = chol.SolveVecTo(&y, etaT.SliceVec(0, f)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndeterminant, err)
	}
	d := mat.NewVecDense(f, nil)
	d.MulVec(r, &y)

	var s *mat.Dense
	if f < t {
		var x mat.Dense
		if err = chol.SolveTo(&x, lambda.Slice(0, f, f, t)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndeterminant, err)
		}
		s = new(mat.Dense)
		s.Mul(r, &x)
	}

	cdims := make([]int, len(targets))
	for i, k := range targets {
		cdims[i] = dims[k]
	}
	return inference.BayesNet{&Conditional{
		keys:       slices.Clone(targets),
		dims:       cdims,
		nrFrontals: nrFrontals,
		r:          r,
		s:          s,
		d:          d,
	}}, nil
}

// Combine sums every factor of graph into one factor over the ascending
// union of their keys.
func Combine(graph inference.FactorGraph) (*Factor, error) {
	dims, err := collectDims(graph)
	if err != nil {
		return nil, gaussianErrorf(opCombine, err)
	}
	if len(dims) == 0 {
		return nil, gaussianErrorf(opCombine, ErrEmptyFactor)
	}
	keys := keysOf(dims)
	joint, eta, err := assemble(graph, keys, dims)
	if err != nil {
		return nil, gaussianErrorf(opCombine, err)
	}
	kdims := make([]int, len(keys))
	for i, k := range keys {
		kdims[i] = dims[k]
	}
	return &Factor{keys: keys, dims: kdims, info: symOf(joint), eta: eta}, nil
}

// Optimize back-substitutes a Bayes net whose conditionals only depend on
// conditionals that follow them (elimination order), returning the mean.
func Optimize(bn inference.BayesNet) (Values, error) {
	out := make(Values)
	for i := len(bn) - 1; i >= 0; i-- {
		if bn[i] == nil {
			continue
		}
		c, ok := bn[i].(*Conditional)
		if !ok {
			return nil, gaussianErrorf(opSolve, fmt.Errorf("conditional %d is %T: %w", i, bn[i], ErrUnsupportedFactor))
		}
		x, err := c.Solve(out)
		if err != nil {
			return nil, err
		}
		out.Insert(x)
	}
	return out, nil
}

// collectDims maps every key of graph to its dimension.
func collectDims(graph inference.FactorGraph) (map[inference.Key]int, error) {
	dims := make(map[inference.Key]int)
	for i, g := range graph {
		if g == nil {
			continue
		}
		f, ok := g.(*Factor)
		if !ok {
			return nil, fmt.Errorf("factor %d is %T: %w", i, g, ErrUnsupportedFactor)
		}
		for j, k := range f.keys {
			if d, seen := dims[k]; seen && d != f.dims[j] {
				return nil, fmt.Errorf("key %d has dims %d and %d: %w", k, d, f.dims[j], ErrDimensionMismatch)
			}
			dims[k] = f.dims[j]
		}
	}
	return dims, nil
}

// assemble sums the information forms of graph into a dense system laid
// out in the given key order. Every key of graph must appear in order.
func assemble(graph inference.FactorGraph, order []inference.Key, dims map[inference.Key]int) (*mat.Dense, *mat.VecDense, error) {
	offsets := make(map[inference.Key]int, len(order))
	var n int
	for _, k := range order {
		offsets[k] = n
		n += dims[k]
	}
	joint := mat.NewDense(n, n, nil)
	eta := mat.NewVecDense(n, nil)

	for _, g := range graph {
		if g == nil {
			continue
		}
		f := g.(*Factor)
		var fi int
		for i, ki := range f.keys {
			oi, ok := offsets[ki]
			if !ok {
				return nil, nil, fmt.Errorf("key %d: %w", ki, ErrMissingTarget)
			}
			for a := 0; a < f.dims[i]; a++ {
				eta.SetVec(oi+a, eta.AtVec(oi+a)+f.eta.AtVec(fi+a))
			}
			var fj int
			for j, kj := range f.keys {
				oj := offsets[kj]
				for a := 0; a < f.dims[i]; a++ {
					for b := 0; b < f.dims[j]; b++ {
						joint.Set(oi+a, oj+b, joint.At(oi+a, oj+b)+f.info.At(fi+a, fj+b))
					}
				}
				fj += f.dims[j]
			}
			fi += f.dims[i]
		}
	}
	return joint, eta, nil
}

// symOf symmetrizes a square matrix.
func symOf(m mat.Matrix) *mat.SymDense {
	n, _ := m.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}
	return s
}

func keysOf(dims map[inference.Key]int) []inference.Key {
	keys := make([]inference.Key, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	return inference.SortedKeys(keys)
}
