// SPDX-License-Identifier: MIT

package inference

import "slices"

// SortedKeys returns an ascending, duplicate-free copy of keys.
// Complexity: O(n log n).
func SortedKeys(keys []Key) []Key {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}

// Difference returns the ascending keys of a that are not in b.
func Difference(a, b []Key) []Key {
	sa, sb := SortedKeys(a), SortedKeys(b)
	out := make([]Key, 0, len(sa))
	var j int
	for _, k := range sa {
		for j < len(sb) && sb[j] < k {
			j++
		}
		if j < len(sb) && sb[j] == k {
			continue
		}
		out = append(out, k)
	}
	return out
}

// Intersection returns the ascending keys present in both a and b.
func Intersection(a, b []Key) []Key {
	sa, sb := SortedKeys(a), SortedKeys(b)
	out := make([]Key, 0, min(len(sa), len(sb)))
	var i, j int
	for i < len(sa) && j < len(sb) {
		switch {
		case sa[i] < sb[j]:
			i++
		case sa[i] > sb[j]:
			j++
		default:
			out = append(out, sa[i])
			i++
			j++
		}
	}
	return out
}

// Union returns the ascending keys present in a or b.
func Union(a, b []Key) []Key {
	out := make([]Key, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return SortedKeys(out)
}

// ContainsAll reports whether every key of sub appears in set.
func ContainsAll(set, sub []Key) bool {
	return len(Difference(sub, set)) == 0
}
