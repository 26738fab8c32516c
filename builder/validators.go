// Package builder provides validation helpers that enforce parameter
// contracts of the constructors.
package builder

import "fmt"

// validateMin ensures that got ≥ min.
// Complexity: O(1).
func validateMin(method string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, got, min, ErrTooFewCliques)
	}
	return nil
}

// validateParents checks that parents describes a rooted tree in index
// order: exactly one root at index 0 and parents[i] < i elsewhere.
// Complexity: O(n).
func validateParents(method string, parents []int) error {
	if err := validateMin(method, len(parents), MinCliques); err != nil {
		return err
	}
	if parents[0] != NoParent {
		return fmt.Errorf("%s: parents[0]=%d, want %d: %w", method, parents[0], NoParent, ErrBadParent)
	}
	for i := 1; i < len(parents); i++ {
		if p := parents[i]; p < 0 || p >= i {
			return fmt.Errorf("%s: parents[%d]=%d not in [0,%d): %w", method, i, p, i, ErrBadParent)
		}
	}
	return nil
}
