// SPDX-License-Identifier: MIT

package inference

import "errors"

// Sentinel errors for key handling and reduction.
var (
	// ErrKeyNotMapped indicates that a Reduction, Permutation or rekey
	// mapping has no entry for a key it was asked to translate.
	ErrKeyNotMapped = errors.New("inference: key not mapped")

	// ErrInvalidKey indicates ParseKey could not interpret its input as an
	// integer key or a symbol key.
	ErrInvalidKey = errors.New("inference: invalid key")

	// ErrNotInjective indicates a rekey mapping that collapses two distinct
	// keys of the same factor onto one key.
	ErrNotInjective = errors.New("inference: mapping is not injective")
)
