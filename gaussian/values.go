// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/inference"
)

// Values assigns a vector to each key.
type Values map[inference.Key]*mat.VecDense

// Keys returns the assigned keys in ascending order.
func (v Values) Keys() []inference.Key {
	keys := make([]inference.Key, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	return inference.SortedKeys(keys)
}

// Insert merges other into v, overwriting existing keys.
func (v Values) Insert(other Values) {
	for k, x := range other {
		v[k] = x
	}
}

// Equals reports whether both hold the same keys with vectors within tol.
func (v Values) Equals(other Values, tol float64) bool {
	if len(v) != len(other) {
		return false
	}
	for k, x := range v {
		y, ok := other[k]
		if !ok || !mat.EqualApprox(x, y, tol) {
			return false
		}
	}
	return true
}

// Print writes every value in key order.
func (v Values) Print(w io.Writer, label string, kf inference.KeyFormatter) {
	if kf == nil {
		kf = inference.DefaultKeyFormatter
	}
	fmt.Fprintf(w, "%s values: %d\n", label, len(v))
	for _, k := range v.Keys() {
		fmt.Fprintf(w, "  %s: %v\n", kf(k), mat.Formatted(v[k].T(), mat.Squeeze()))
	}
}
