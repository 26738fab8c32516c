// SPDX-License-Identifier: MIT

package cliquetree

import (
	"errors"
	"fmt"
)

// Structural errors. They signal caller misuse and are never produced by a
// numerical failure.
var (
	// ErrNoParent is returned when a parent-relative operation reaches a
	// clique without a parent, e.g. a root that is not the requested R.
	ErrNoParent = errors.New("cliquetree: clique has no parent")

	// ErrParentExpired is returned when the weak parent reference of a
	// clique no longer resolves because the parent was collected.
	ErrParentExpired = errors.New("cliquetree: parent reference expired")

	// ErrNilClique indicates a nil *Clique argument.
	ErrNilClique = errors.New("cliquetree: nil clique")

	// ErrNotAncestor indicates a shortcut target that is not an ancestor.
	ErrNotAncestor = errors.New("cliquetree: clique is not an ancestor")

	// ErrAlreadyAttached indicates AddChild with a clique that already has a
	// parent, or with the clique itself.
	ErrAlreadyAttached = errors.New("cliquetree: clique already attached")
)

// Configuration and index errors.
var (
	// ErrNilEliminate indicates a query without an elimination strategy.
	ErrNilEliminate = errors.New("cliquetree: nil elimination function")

	// ErrNilConditional indicates a non-root clique without a conditional.
	ErrNilConditional = errors.New("cliquetree: clique has no conditional")

	// ErrUnknownKey indicates a key that is not frontal in any clique.
	ErrUnknownKey = errors.New("cliquetree: key not in tree")

	// ErrDuplicateFrontal indicates a key that is frontal in two cliques.
	ErrDuplicateFrontal = errors.New("cliquetree: key frontal in two cliques")

	// ErrRunningIntersection indicates a separator key missing from the
	// parent's frontal and separator keys.
	ErrRunningIntersection = errors.New("cliquetree: running intersection violated")
)

// Operation tags for error wrapping.
const (
	opSeparatorMarginal = "SeparatorMarginal"
	opShortcut          = "Shortcut"
	opMarginal          = "Marginal"
	opAddChild          = "AddChild"
	opNew               = "New"
	opValidate          = "Validate"
)

// cliqueErrorf wraps err with an operation tag.
func cliqueErrorf(tag string, err error) error {
	return fmt.Errorf("cliquetree: %s: %w", tag, err)
}
