// SPDX-License-Identifier: MIT

package cliquetree

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"weak"

	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/bayestree/inference"
)

// DefaultTolerance is the comparison tolerance used by Equals callers that
// have no better value.
const DefaultTolerance = 1e-9

// Clique is one node of a clique tree.
//
// Ownership flows downward: a clique owns its conditional and its children.
// The parent is only observed through a weak pointer, so holding a clique
// never keeps its ancestors alive.
type Clique struct {
	conditional inference.Conditional
	children    []*Clique
	parent      weak.Pointer[Clique]
	hasParent   bool

	logger *slog.Logger

	mu         sync.Mutex            // guards cached, hasCache and generation
	cached     inference.FactorGraph // P(S|R); valid only when hasCache
	hasCache   bool
	generation uint64 // bumped by every invalidation of c
	flight     singleflight.Group
}

// NewClique wraps a conditional into a detached clique. A nil conditional
// is allowed for the root of an empty tree.
func NewClique(conditional inference.Conditional) *Clique {
	return &Clique{conditional: conditional}
}

// AddChild attaches child below c and points its weak parent reference at c.
// Not safe for use concurrently with queries on the same tree.
func (c *Clique) AddChild(child *Clique) error {
	if c == nil || child == nil {
		return cliqueErrorf(opAddChild, ErrNilClique)
	}
	if child == c || child.hasParent {
		return cliqueErrorf(opAddChild, ErrAlreadyAttached)
	}
	child.parent = weak.Make(c)
	child.hasParent = true
	c.children = append(c.children, child)
	return nil
}

// Conditional returns the clique's conditional (nil for an empty root).
func (c *Clique) Conditional() inference.Conditional { return c.conditional }

// Children returns the children in insertion order.
func (c *Clique) Children() []*Clique { return slices.Clone(c.children) }

// IsRoot reports whether c has no parent.
func (c *Clique) IsRoot() bool { return !c.hasParent }

// Parent resolves the weak parent reference. The root yields ErrNoParent and
// a collected parent ErrParentExpired.
func (c *Clique) Parent() (*Clique, error) {
	if !c.hasParent {
		return nil, ErrNoParent
	}
	p := c.parent.Value()
	if p == nil {
		return nil, ErrParentExpired
	}
	return p, nil
}

// Frontals returns the frontal keys (none for an empty root).
func (c *Clique) Frontals() []inference.Key {
	if c.conditional == nil {
		return nil
	}
	return c.conditional.Frontals()
}

// Separator returns the separator (parent) keys.
func (c *Clique) Separator() []inference.Key {
	if c.conditional == nil {
		return nil
	}
	return c.conditional.Parents()
}

// Keys returns frontal followed by separator keys.
func (c *Clique) Keys() []inference.Key {
	if c.conditional == nil {
		return nil
	}
	return c.conditional.Keys()
}

// Equals compares only the local conditionals: two cliques are equal when
// neither has a conditional or both conditionals agree within tol. Children,
// parent and cache state are ignored.
func (c *Clique) Equals(other *Clique, tol float64) bool {
	if other == nil {
		return false
	}
	if c.conditional == nil || other.conditional == nil {
		return c.conditional == nil && other.conditional == nil
	}
	return c.conditional.Equals(other.conditional, tol)
}

// Print delegates to the conditional's Print.
func (c *Clique) Print(w io.Writer, label string, kf inference.KeyFormatter) {
	if c.conditional == nil {
		_, _ = io.WriteString(w, label+" (empty)\n")
		return
	}
	c.conditional.Print(w, label, kf)
}

// TreeSize returns the number of cliques in the subtree rooted at c.
// Complexity: O(subtree).
func (c *Clique) TreeSize() int {
	size := 1
	for _, child := range c.children {
		size += child.TreeSize()
	}
	return size
}

// NumCachedSeparatorMarginals counts cached separator marginals in the
// subtree, stopping at cliques whose own cache is empty.
func (c *Clique) NumCachedSeparatorMarginals() int {
	if !c.isCached() {
		return 0
	}
	count := 1
	for _, child := range c.children {
		count += child.NumCachedSeparatorMarginals()
	}
	return count
}

// IsCached reports whether the separator marginal of c is cached.
func (c *Clique) IsCached() bool { return c.isCached() }

func (c *Clique) isCached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasCache
}

func (c *Clique) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}
