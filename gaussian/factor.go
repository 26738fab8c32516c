// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"io"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/inference"
)

// Factor is a Gaussian factor in information form over one or more keys.
// A Factor is immutable once constructed.
type Factor struct {
	keys []inference.Key
	dims []int
	info *mat.SymDense // Λ, total×total
	eta  *mat.VecDense // η, total
}

var _ inference.Factor = (*Factor)(nil)

// NewFactor builds an information-form factor. dims[i] is the dimension of
// keys[i]; info must be square and eta long enough for the summed dims.
// Inputs are copied.
func NewFactor(keys []inference.Key, dims []int, info mat.Symmetric, eta mat.Vector) (*Factor, error) {
	total, err := validateKeys(keys, dims)
	if err != nil {
		return nil, gaussianErrorf(opNewFactor, err)
	}
	if info == nil || eta == nil {
		return nil, gaussianErrorf(opNewFactor, ErrShape)
	}
	if n := info.SymmetricDim(); n != total {
		return nil, gaussianErrorf(opNewFactor, fmt.Errorf("information is %d×%d, want %d: %w", n, n, total, ErrShape))
	}
	if n := eta.Len(); n != total {
		return nil, gaussianErrorf(opNewFactor, fmt.Errorf("eta has length %d, want %d: %w", n, total, ErrShape))
	}

	f := &Factor{
		keys: slices.Clone(keys),
		dims: slices.Clone(dims),
		info: mat.NewSymDense(total, nil),
		eta:  mat.NewVecDense(total, nil),
	}
	f.info.CopySym(info)
	f.eta.CopyVec(eta)

	return f, nil
}

// NewPrior builds a factor expressing x ~ N(mean, σ²I).
func NewPrior(key inference.Key, mean []float64, sigma float64) (*Factor, error) {
	n := len(mean)
	if n == 0 || sigma <= 0 {
		return nil, gaussianErrorf(opNewFactor, ErrShape)
	}
	w := 1 / (sigma * sigma)
	info := mat.NewSymDense(n, nil)
	eta := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		info.SetSym(i, i, w)
		eta.SetVec(i, w*mean[i])
	}
	return NewFactor([]inference.Key{key}, []int{n}, info, eta)
}

// Keys returns the factor's keys in block order.
func (f *Factor) Keys() []inference.Key { return slices.Clone(f.keys) }

// Dims returns the per-key dimensions in block order.
func (f *Factor) Dims() []int { return slices.Clone(f.dims) }

// Dim returns the dimension of key and whether the factor involves it.
func (f *Factor) Dim(key inference.Key) (int, bool) {
	if i := slices.Index(f.keys, key); i >= 0 {
		return f.dims[i], true
	}
	return 0, false
}

// Information returns a copy of Λ.
func (f *Factor) Information() *mat.SymDense {
	out := mat.NewSymDense(f.info.SymmetricDim(), nil)
	out.CopySym(f.info)
	return out
}

// InformationVector returns a copy of η.
func (f *Factor) InformationVector() *mat.VecDense {
	return mat.VecDenseCopyOf(f.eta)
}

// Rekey returns a copy of f over rewritten keys. Λ and η are shared since
// neither is ever mutated.
func (f *Factor) Rekey(mapping map[inference.Key]inference.Key) (inference.Factor, error) {
	keys, err := inference.RekeyKeys(f.keys, mapping)
	if err != nil {
		return nil, err
	}
	return &Factor{keys: keys, dims: slices.Clone(f.dims), info: f.info, eta: f.eta}, nil
}

// Equals reports whether other is a *Factor over the same keys (in the same
// order) whose Λ and η agree within tol.
func (f *Factor) Equals(other inference.Factor, tol float64) bool {
	o, ok := other.(*Factor)
	if !ok || o == nil {
		return false
	}
	if !slices.Equal(f.keys, o.keys) || !slices.Equal(f.dims, o.dims) {
		return false
	}
	return mat.EqualApprox(f.info, o.info, tol) && mat.EqualApprox(f.eta, o.eta, tol)
}

// Print writes the keys, Λ and η.
func (f *Factor) Print(w io.Writer, label string, kf inference.KeyFormatter) {
	fmt.Fprintf(w, "%s Gaussian factor on [%s]\n", label, inference.FormatKeys(f.keys, kf))
	fmt.Fprintf(w, "  Λ = %v\n", mat.Formatted(f.info, mat.Prefix("      "), mat.Squeeze()))
	fmt.Fprintf(w, "  η = %v\n", mat.Formatted(f.eta.T(), mat.Squeeze()))
}

// Moments returns the mean Λ⁻¹η and covariance Λ⁻¹ of the factor.
// ErrIndeterminant is returned if Λ is not positive definite.
func (f *Factor) Moments() (*mat.VecDense, *mat.SymDense, error) {
	var chol mat.Cholesky
	if !chol.Factorize(f.info) {
		return nil, nil, gaussianErrorf(opMoments, ErrIndeterminant)
	}
	var mean mat.VecDense
	if err := chol.SolveVecTo(&mean, f.eta); err != nil {
		return nil, nil, gaussianErrorf(opMoments, fmt.Errorf("%w: %v", ErrIndeterminant, err))
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil, nil, gaussianErrorf(opMoments, fmt.Errorf("%w: %v", ErrIndeterminant, err))
	}
	return &mean, &cov, nil
}

// validateKeys checks keys/dims agreement and returns the summed dimension.
func validateKeys(keys []inference.Key, dims []int) (int, error) {
	if len(keys) == 0 {
		return 0, ErrEmptyFactor
	}
	if len(keys) != len(dims) {
		return 0, fmt.Errorf("%d keys but %d dims: %w", len(keys), len(dims), ErrShape)
	}
	seen := make(map[inference.Key]struct{}, len(keys))
	var total int
	for i, k := range keys {
		if _, dup := seen[k]; dup {
			return 0, fmt.Errorf("key %d: %w", k, ErrDuplicateKey)
		}
		seen[k] = struct{}{}
		if dims[i] <= 0 {
			return 0, fmt.Errorf("key %d has dim %d: %w", k, dims[i], ErrShape)
		}
		total += dims[i]
	}
	return total, nil
}
