// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"io"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/inference"
)

// Conditional is the square-root form of p(F|S):
//
//	p(x_F | x_S) ∝ exp(-½‖R x_F + S x_S − d‖²)
//
// with R upper triangular and non-singular. A Conditional without parents
// is a joint density over its frontals. Conditionals are immutable.
type Conditional struct {
	keys       []inference.Key // frontals followed by parents
	dims       []int
	nrFrontals int
	r          *mat.Dense    // f×f
	s          *mat.Dense    // f×p; nil when there are no parents
	d          *mat.VecDense // f
}

var _ inference.Conditional = (*Conditional)(nil)

// NewConditional validates and copies the square-root parameters.
// dims lists the dimensions of frontals followed by those of parents. s must
// be nil exactly when parents is empty.
func NewConditional(frontals, parents []inference.Key, dims []int, r, s mat.Matrix, d mat.Vector) (*Conditional, error) {
	if len(frontals) == 0 {
		return nil, gaussianErrorf(opNewConditional, ErrEmptyFactor)
	}
	keys := append(slices.Clone(frontals), parents...)
	if _, err := validateKeys(keys, dims); err != nil {
		return nil, gaussianErrorf(opNewConditional, err)
	}
	var f, p int
	for i := range keys {
		if i < len(frontals) {
			f += dims[i]
		} else {
			p += dims[i]
		}
	}

	if r == nil || d == nil {
		return nil, gaussianErrorf(opNewConditional, ErrShape)
	}
	if rr, rc := r.Dims(); rr != f || rc != f {
		return nil, gaussianErrorf(opNewConditional, fmt.Errorf("R is %d×%d, want %d×%d: %w", rr, rc, f, f, ErrShape))
	}
	if d.Len() != f {
		return nil, gaussianErrorf(opNewConditional, fmt.Errorf("d has length %d, want %d: %w", d.Len(), f, ErrShape))
	}
	switch {
	case p == 0 && s != nil:
		return nil, gaussianErrorf(opNewConditional, fmt.Errorf("S given without parents: %w", ErrShape))
	case p > 0 && s == nil:
		return nil, gaussianErrorf(opNewConditional, fmt.Errorf("parents given without S: %w", ErrShape))
	case p > 0:
		if sr, sc := s.Dims(); sr != f || sc != p {
			return nil, gaussianErrorf(opNewConditional, fmt.Errorf("S is %d×%d, want %d×%d: %w", sr, sc, f, p, ErrShape))
		}
	}
	for i := 0; i < f; i++ {
		if r.At(i, i) == 0 {
			return nil, gaussianErrorf(opNewConditional, fmt.Errorf("R(%d,%d) = 0: %w", i, i, ErrIndeterminant))
		}
		for j := 0; j < i; j++ {
			if r.At(i, j) != 0 {
				return nil, gaussianErrorf(opNewConditional, fmt.Errorf("R(%d,%d) = %g: %w", i, j, r.At(i, j), ErrNotUpperTriangular))
			}
		}
	}

	c := &Conditional{
		keys:       keys,
		dims:       slices.Clone(dims),
		nrFrontals: len(frontals),
		r:          mat.DenseCopyOf(r),
		d:          mat.VecDenseCopyOf(d),
	}
	if s != nil {
		c.s = mat.DenseCopyOf(s)
	}
	return c, nil
}

// Frontals returns the frontal keys.
func (c *Conditional) Frontals() []inference.Key { return slices.Clone(c.keys[:c.nrFrontals]) }

// Parents returns the parent (separator) keys.
func (c *Conditional) Parents() []inference.Key { return slices.Clone(c.keys[c.nrFrontals:]) }

// Keys returns frontals followed by parents.
func (c *Conditional) Keys() []inference.Key { return slices.Clone(c.keys) }

// Dims returns the dimensions of frontals followed by parents.
func (c *Conditional) Dims() []int { return slices.Clone(c.dims) }

// R returns a copy of the upper-triangular R.
func (c *Conditional) R() *mat.Dense { return mat.DenseCopyOf(c.r) }

// S returns a copy of S, or nil without parents.
func (c *Conditional) S() *mat.Dense {
	if c.s == nil {
		return nil
	}
	return mat.DenseCopyOf(c.s)
}

// D returns a copy of d.
func (c *Conditional) D() *mat.VecDense { return mat.VecDenseCopyOf(c.d) }

// Information returns RᵀR, the precision of x_F given x_S.
func (c *Conditional) Information() *mat.SymDense {
	var out mat.SymDense
	out.SymOuterK(1, c.r.T())
	return &out
}

// ToFactor expands the conditional into information form over all keys.
func (c *Conditional) ToFactor() inference.Factor {
	a := c.stacked()
	var info mat.SymDense
	info.SymOuterK(1, a.T())
	var eta mat.VecDense
	eta.MulVec(a.T(), c.d)
	return &Factor{keys: slices.Clone(c.keys), dims: slices.Clone(c.dims), info: &info, eta: &eta}
}

// stacked returns [R S].
func (c *Conditional) stacked() *mat.Dense {
	f, _ := c.r.Dims()
	if c.s == nil {
		return c.r
	}
	_, p := c.s.Dims()
	a := mat.NewDense(f, f+p, nil)
	a.Slice(0, f, 0, f).(*mat.Dense).Copy(c.r)
	a.Slice(0, f, f, f+p).(*mat.Dense).Copy(c.s)
	return a
}

// Rekey returns a copy over rewritten keys, sharing the immutable matrices.
func (c *Conditional) Rekey(mapping map[inference.Key]inference.Key) (inference.Conditional, error) {
	keys, err := inference.RekeyKeys(c.keys, mapping)
	if err != nil {
		return nil, err
	}
	return &Conditional{keys: keys, dims: slices.Clone(c.dims), nrFrontals: c.nrFrontals, r: c.r, s: c.s, d: c.d}, nil
}

// Equals compares keys, dims and R, S, d within tol.
func (c *Conditional) Equals(other inference.Conditional, tol float64) bool {
	o, ok := other.(*Conditional)
	if !ok || o == nil {
		return false
	}
	if c.nrFrontals != o.nrFrontals || !slices.Equal(c.keys, o.keys) || !slices.Equal(c.dims, o.dims) {
		return false
	}
	if (c.s == nil) != (o.s == nil) {
		return false
	}
	if c.s != nil && !mat.EqualApprox(c.s, o.s, tol) {
		return false
	}
	return mat.EqualApprox(c.r, o.r, tol) && mat.EqualApprox(c.d, o.d, tol)
}

// Print writes p(F|S) followed by R, S and d.
func (c *Conditional) Print(w io.Writer, label string, kf inference.KeyFormatter) {
	fmt.Fprintf(w, "%s p(%s", label, inference.FormatKeys(c.Frontals(), kf))
	if c.s != nil {
		fmt.Fprintf(w, " | %s", inference.FormatKeys(c.Parents(), kf))
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "  R = %v\n", mat.Formatted(c.r, mat.Prefix("      "), mat.Squeeze()))
	if c.s != nil {
		fmt.Fprintf(w, "  S = %v\n", mat.Formatted(c.s, mat.Prefix("      "), mat.Squeeze()))
	}
	fmt.Fprintf(w, "  d = %v\n", mat.Formatted(c.d.T(), mat.Squeeze()))
}

// Solve returns the frontal values R⁻¹(d − S x_S) given values for every
// parent. Extra entries in parents are ignored.
func (c *Conditional) Solve(parents Values) (Values, error) {
	rhs := mat.VecDenseCopyOf(c.d)
	if c.s != nil {
		_, p := c.s.Dims()
		xs := mat.NewVecDense(p, nil)
		var off int
		for i := c.nrFrontals; i < len(c.keys); i++ {
			v, ok := parents[c.keys[i]]
			if !ok {
				return nil, gaussianErrorf(opSolve, fmt.Errorf("parent %d: %w", c.keys[i], ErrMissingValue))
			}
			if v.Len() != c.dims[i] {
				return nil, gaussianErrorf(opSolve, fmt.Errorf("parent %d has length %d, want %d: %w", c.keys[i], v.Len(), c.dims[i], ErrShape))
			}
			xs.SliceVec(off, off+c.dims[i]).(*mat.VecDense).CopyVec(v)
			off += c.dims[i]
		}
		var sx mat.VecDense
		sx.MulVec(c.s, xs)
		rhs.SubVec(rhs, &sx)
	}

	var x mat.VecDense
	if err := x.SolveVec(c.r, rhs); err != nil {
		return nil, gaussianErrorf(opSolve, fmt.Errorf("%w: %v", ErrIndeterminant, err))
	}

	out := make(Values, c.nrFrontals)
	var off int
	for i := 0; i < c.nrFrontals; i++ {
		out[c.keys[i]] = mat.VecDenseCopyOf(x.SliceVec(off, off+c.dims[i]))
		off += c.dims[i]
	}
	return out, nil
}
