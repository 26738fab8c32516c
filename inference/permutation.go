// SPDX-License-Identifier: MIT

package inference

import "fmt"

// Permutation maps a compact index i (0..n-1) to the original key p[i].
// A reducing permutation lists the original keys in ascending order, so the
// compact encoding of a local sub-problem is independent of the size of the
// surrounding key universe.
type Permutation []Key

// Reduction is the inverse of a Permutation: original key → compact index.
type Reduction map[Key]Key

// NewReducingPermutation builds the permutation that sends the dense range
// 0..n-1 onto the sorted, de-duplicated keys.
// Complexity: O(n log n).
func NewReducingPermutation(keys []Key) Permutation {
	return Permutation(SortedKeys(keys))
}

// InverseOf builds the reduction undoing p.
// Complexity: O(n).
func InverseOf(p Permutation) Reduction {
	r := make(Reduction, len(p))
	for i, k := range p {
		r[k] = Key(i)
	}
	return r
}

// Mapping returns p as a compact → original map, suitable for Rekey.
func (p Permutation) Mapping() map[Key]Key {
	m := make(map[Key]Key, len(p))
	for i, k := range p {
		m[Key(i)] = k
	}
	return m
}

// Restore maps compact indices back to original keys.
func (p Permutation) Restore(keys []Key) ([]Key, error) {
	out := make([]Key, len(keys))
	for i, k := range keys {
		if uint64(k) >= uint64(len(p)) {
			return nil, fmt.Errorf("restore %d: %w", k, ErrKeyNotMapped)
		}
		out[i] = p[k]
	}
	return out, nil
}

// Reduce maps original keys to compact indices.
func (r Reduction) Reduce(keys []Key) ([]Key, error) {
	out := make([]Key, len(keys))
	for i, k := range keys {
		c, ok := r[k]
		if !ok {
			return nil, fmt.Errorf("reduce %d: %w", k, ErrKeyNotMapped)
		}
		out[i] = c
	}
	return out, nil
}
