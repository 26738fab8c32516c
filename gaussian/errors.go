// SPDX-License-Identifier: MIT

package gaussian

import (
	"errors"
	"fmt"
)

var (
	// ErrShape indicates that a matrix or vector does not match the
	// dimensions implied by the keys.
	ErrShape = errors.New("gaussian: shape mismatch")

	// ErrEmptyFactor indicates a factor or conditional without any key.
	ErrEmptyFactor = errors.New("gaussian: empty factor")

	// ErrDuplicateKey indicates a key listed more than once.
	ErrDuplicateKey = errors.New("gaussian: duplicate key")

	// ErrNotUpperTriangular indicates a conditional R with entries below
	// the diagonal.
	ErrNotUpperTriangular = errors.New("gaussian: R is not upper triangular")

	// ErrIndeterminant indicates a block that must be positive definite is
	// not, i.e. the system does not determine the eliminated variables.
	ErrIndeterminant = errors.New("gaussian: indeterminant system")

	// ErrDimensionMismatch indicates two factors that disagree on the
	// dimension of a shared key.
	ErrDimensionMismatch = errors.New("gaussian: key dimension mismatch")

	// ErrUnsupportedFactor indicates a graph entry of a foreign type.
	ErrUnsupportedFactor = errors.New("gaussian: unsupported factor type")

	// ErrMissingTarget indicates a target key absent from the graph.
	ErrMissingTarget = errors.New("gaussian: target key not in graph")

	// ErrBadFrontalCount indicates nrFrontals outside [0, len(targets)].
	ErrBadFrontalCount = errors.New("gaussian: bad frontal count")

	// ErrMissingValue indicates Solve was called without a parent value.
	ErrMissingValue = errors.New("gaussian: missing value")
)

// Operation tags used when wrapping errors.
const (
	opNewFactor      = "NewFactor"
	opNewConditional = "NewConditional"
	opCombine        = "Combine"
	opEliminate      = "Eliminate"
	opMoments        = "Moments"
	opSolve          = "Solve"
)

// gaussianErrorf wraps err with an operation tag, keeping errors.Is intact.
func gaussianErrorf(tag string, err error) error {
	return fmt.Errorf("gaussian: %s: %w", tag, err)
}
