// SPDX-License-Identifier: MIT

// Package gaussian implements linear-Gaussian densities for the inference
// contracts: an information-form Factor, a square-root Conditional and an
// elimination strategy that marginalizes by Schur complement.
//
// Representation:
//
//   - Factor holds the information matrix Λ and vector η of
//     exp(-½ xᵀΛx + ηᵀx) over its keys; every key owns a contiguous block of
//     Dim(key) rows, in key order.
//   - Conditional encodes p(F|S) ∝ exp(-½‖R x_F + S x_S − d‖²) with R upper
//     triangular. ToFactor expands it to Λ = [R S]ᵀ[R S], η = [R S]ᵀd.
//
// Elimination:
//
//	Eliminate(ctx, graph, targets, nrFrontals) sums the information forms,
//	marginalizes every non-target key (Λ_TT − Λ_TE Λ_EE⁻¹ Λ_ET), then
//	factors the first nrFrontals targets with a Cholesky decomposition into a
//	single Conditional on the remaining targets.
//
// Linear algebra is delegated to gonum.org/v1/gonum/mat.
//
// Errors:
//
//   - ErrShape             matrix/vector shapes disagree with the key dims.
//   - ErrEmptyFactor       a factor or conditional without keys.
//   - ErrDuplicateKey      a key listed twice.
//   - ErrNotUpperTriangular R has non-zero entries below its diagonal.
//   - ErrIndeterminant     a block that must be positive definite is not.
//   - ErrDimensionMismatch two factors disagree on a key's dimension.
//   - ErrUnsupportedFactor a graph entry is not a *gaussian.Factor.
//   - ErrMissingTarget     a target key does not appear in the graph.
//   - ErrBadFrontalCount   nrFrontals is outside [0, len(targets)].
//   - ErrMissingValue      Solve was not given a value for a parent.
package gaussian
