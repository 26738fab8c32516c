// SPDX-License-Identifier: MIT

package inference

import (
	"context"
	"fmt"
	"io"
)

// Factor is a density (or potential) over a small set of variables.
// Implementations are immutable: Rekey returns a new value and never
// touches the receiver, so factors may be shared between graphs and
// goroutines freely.
type Factor interface {
	// Keys returns the factor's variables in the factor's own order.
	Keys() []Key

	// Rekey returns a copy whose variable references are rewritten through
	// mapping. Every key must be present in mapping (ErrKeyNotMapped).
	Rekey(mapping map[Key]Key) (Factor, error)

	// Equals reports numerical equality within tol.
	Equals(other Factor, tol float64) bool

	// Print writes a human-readable rendering prefixed by label.
	Print(w io.Writer, label string, kf KeyFormatter)
}

// Conditional is a density p(F|S) over frontal variables F given the
// separator (parent) variables S. Like Factor it is immutable.
type Conditional interface {
	// Frontals returns F in the conditional's order.
	Frontals() []Key

	// Parents returns S in the conditional's order.
	Parents() []Key

	// Keys returns F followed by S.
	Keys() []Key

	// ToFactor converts the conditional to a generic factor over F ∪ S.
	ToFactor() Factor

	// Rekey returns a copy with rewritten variable references.
	Rekey(mapping map[Key]Key) (Conditional, error)

	// Equals reports numerical equality within tol.
	Equals(other Conditional, tol float64) bool

	// Print writes a human-readable rendering prefixed by label.
	Print(w io.Writer, label string, kf KeyFormatter)
}

// EliminateFunc is the pluggable elimination strategy. It consumes a factor
// graph and returns a Bayes net over targets whose first nrFrontals keys are
// frontal and whose remaining targets (if any) are parents. Every key of the
// graph not listed in targets is marginalized out. The graph must not be
// modified.
type EliminateFunc func(ctx context.Context, graph FactorGraph, targets []Key, nrFrontals int) (BayesNet, error)

// RekeyKeys rewrites keys through mapping. It is the helper concrete factor
// types use to implement Rekey.
func RekeyKeys(keys []Key, mapping map[Key]Key) ([]Key, error) {
	out := make([]Key, len(keys))
	seen := make(map[Key]struct{}, len(keys))
	for i, k := range keys {
		nk, ok := mapping[k]
		if !ok {
			return nil, fmt.Errorf("rekey %d: %w", k, ErrKeyNotMapped)
		}
		if _, dup := seen[nk]; dup {
			return nil, fmt.Errorf("rekey %d -> %d: %w", k, nk, ErrNotInjective)
		}
		seen[nk] = struct{}{}
		out[i] = nk
	}
	return out, nil
}

// FactorGraph is an ordered collection of factors. Nil entries are allowed
// and ignored by every method.
type FactorGraph []Factor

// Push appends factors to the graph.
func (g *FactorGraph) Push(factors ...Factor) {
	*g = append(*g, factors...)
}

// Keys returns every key referenced by the graph, ascending and unique.
func (g FactorGraph) Keys() []Key {
	var all []Key
	for _, f := range g {
		if f != nil {
			all = append(all, f.Keys()...)
		}
	}
	return SortedKeys(all)
}

// Size returns the number of non-nil factors.
func (g FactorGraph) Size() int {
	var n int
	for _, f := range g {
		if f != nil {
			n++
		}
	}
	return n
}

// Clone returns a shallow copy; factors are immutable and therefore shared.
func (g FactorGraph) Clone() FactorGraph {
	if g == nil {
		return FactorGraph{}
	}
	out := make(FactorGraph, len(g))
	copy(out, g)
	return out
}

// Rekey returns a new graph with every factor rekeyed through mapping.
func (g FactorGraph) Rekey(mapping map[Key]Key) (FactorGraph, error) {
	out := make(FactorGraph, len(g))
	for i, f := range g {
		if f == nil {
			continue
		}
		nf, err := f.Rekey(mapping)
		if err != nil {
			return nil, fmt.Errorf("factor %d: %w", i, err)
		}
		out[i] = nf
	}
	return out, nil
}

// Equals compares the graphs factor by factor, ignoring nil entries.
func (g FactorGraph) Equals(other FactorGraph, tol float64) bool {
	a, b := g.compact(), other.compact()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i], tol) {
			return false
		}
	}
	return true
}

// Print writes every factor, each labelled with its position.
func (g FactorGraph) Print(w io.Writer, label string, kf KeyFormatter) {
	fmt.Fprintf(w, "%s size: %d\n", label, g.Size())
	for i, f := range g {
		if f != nil {
			f.Print(w, fmt.Sprintf("factor %d:", i), kf)
		}
	}
}

func (g FactorGraph) compact() FactorGraph {
	out := make(FactorGraph, 0, len(g))
	for _, f := range g {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// BayesNet is an ordered collection of conditionals.
type BayesNet []Conditional

// Frontals returns the frontal keys of all conditionals in order.
func (bn BayesNet) Frontals() []Key {
	var out []Key
	for _, c := range bn {
		if c != nil {
			out = append(out, c.Frontals()...)
		}
	}
	return out
}

// Keys returns every key referenced by the net, ascending and unique.
func (bn BayesNet) Keys() []Key {
	var all []Key
	for _, c := range bn {
		if c != nil {
			all = append(all, c.Keys()...)
		}
	}
	return SortedKeys(all)
}

// AsFactorGraph converts each conditional to a factor.
func (bn BayesNet) AsFactorGraph() FactorGraph {
	out := make(FactorGraph, 0, len(bn))
	for _, c := range bn {
		if c != nil {
			out = append(out, c.ToFactor())
		}
	}
	return out
}

// Rekey returns a new net with every conditional rekeyed through mapping.
func (bn BayesNet) Rekey(mapping map[Key]Key) (BayesNet, error) {
	out := make(BayesNet, len(bn))
	for i, c := range bn {
		if c == nil {
			continue
		}
		nc, err := c.Rekey(mapping)
		if err != nil {
			return nil, fmt.Errorf("conditional %d: %w", i, err)
		}
		out[i] = nc
	}
	return out, nil
}

// Equals compares the nets conditional by conditional.
func (bn BayesNet) Equals(other BayesNet, tol float64) bool {
	if len(bn) != len(other) {
		return false
	}
	for i := range bn {
		switch {
		case bn[i] == nil && other[i] == nil:
		case bn[i] == nil || other[i] == nil:
			return false
		case !bn[i].Equals(other[i], tol):
			return false
		}
	}
	return true
}

// Print writes every conditional.
func (bn BayesNet) Print(w io.Writer, label string, kf KeyFormatter) {
	fmt.Fprintf(w, "%s size: %d\n", label, len(bn))
	for i, c := range bn {
		if c != nil {
			c.Print(w, fmt.Sprintf("conditional %d:", i), kf)
		}
	}
}
