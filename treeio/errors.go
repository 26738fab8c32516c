// SPDX-License-Identifier: MIT

package treeio

import "errors"

var (
	// ErrUnsupportedVersion indicates a document version this package
	// cannot read.
	ErrUnsupportedVersion = errors.New("treeio: unsupported document version")

	// ErrUnsupportedConditional indicates a clique whose conditional is not
	// a *gaussian.Conditional.
	ErrUnsupportedConditional = errors.New("treeio: unsupported conditional type")

	// ErrMissingRoot indicates a document without a root clique.
	ErrMissingRoot = errors.New("treeio: document has no root")

	// ErrMalformed indicates a clique entry whose matrices are ragged or
	// whose keys cannot be parsed.
	ErrMalformed = errors.New("treeio: malformed clique")
)
