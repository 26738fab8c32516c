// SPDX-License-Identifier: MIT

package cliquetree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/bayestree/inference"
)

// Tree is a clique tree: the root, an index from frontal keys to cliques
// and the elimination strategy used by key-addressed queries. All queries
// use the root as R.
type Tree struct {
	root      *Clique
	nodes     map[inference.Key]*Clique
	eliminate inference.EliminateFunc
	logger    *slog.Logger
}

// New indexes the tree rooted at root. Every key must be frontal in exactly
// one clique. The tree must not be restructured afterwards.
//
// Errors: ErrNilClique, ErrNilEliminate, ErrAlreadyAttached (root has a
// parent), ErrDuplicateFrontal.
func New(root *Clique, eliminate inference.EliminateFunc, opts ...Option) (*Tree, error) {
	if root == nil {
		return nil, cliqueErrorf(opNew, ErrNilClique)
	}
	if eliminate == nil {
		return nil, cliqueErrorf(opNew, ErrNilEliminate)
	}
	if !root.IsRoot() {
		return nil, cliqueErrorf(opNew, ErrAlreadyAttached)
	}

	t := &Tree{
		root:      root,
		nodes:     make(map[inference.Key]*Clique),
		eliminate: eliminate,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	err := Walk(root, WithOnVisit(func(c *Clique, _ int) error {
		c.logger = t.logger
		for _, k := range c.Frontals() {
			if _, dup := t.nodes[k]; dup {
				return fmt.Errorf("key %d: %w", k, ErrDuplicateFrontal)
			}
			t.nodes[k] = c
		}
		return nil
	}))
	if err != nil {
		return nil, cliqueErrorf(opNew, err)
	}

	t.logger.Debug("cliquetree: tree indexed", slog.Int("cliques", root.TreeSize()), slog.Int("keys", len(t.nodes)))
	return t, nil
}

// Root returns the root clique.
func (t *Tree) Root() *Clique { return t.root }

// Size returns the number of cliques.
func (t *Tree) Size() int { return t.root.TreeSize() }

// Keys returns every frontal key in ascending order.
func (t *Tree) Keys() []inference.Key {
	keys := make([]inference.Key, 0, len(t.nodes))
	for k := range t.nodes {
		keys = append(keys, k)
	}
	return inference.SortedKeys(keys)
}

// Clique returns the clique in which key is frontal.
func (t *Tree) Clique(key inference.Key) (*Clique, error) {
	c, ok := t.nodes[key]
	if !ok {
		return nil, fmt.Errorf("cliquetree: key %d: %w", key, ErrUnknownKey)
	}
	return c, nil
}

// Cliques returns all cliques in pre-order.
func (t *Tree) Cliques() []*Clique {
	out := make([]*Clique, 0, len(t.nodes))
	_ = Walk(t.root, WithOnVisit(func(c *Clique, _ int) error {
		out = append(out, c)
		return nil
	}))
	return out
}

// NumCachedSeparatorMarginals counts cached separator marginals from the root.
func (t *Tree) NumCachedSeparatorMarginals() int { return t.root.NumCachedSeparatorMarginals() }

// DeleteCachedShortcuts clears every cached separator marginal. Call it
// whenever a conditional of the tree changes.
func (t *Tree) DeleteCachedShortcuts() {
	cached := t.root.NumCachedSeparatorMarginals()
	t.root.DeleteCachedShortcuts()
	t.logger.Debug("cliquetree: cached shortcuts deleted", slog.Int("cleared", cached))
}

// SeparatorMarginal returns P(S|root) for the clique in which key is frontal.
func (t *Tree) SeparatorMarginal(ctx context.Context, key inference.Key) (inference.FactorGraph, error) {
	c, err := t.Clique(key)
	if err != nil {
		return nil, err
	}
	return c.SeparatorMarginal(ctx, t.root, t.eliminate)
}

// CliqueMarginal returns the joint over the keys of the clique in which key
// is frontal.
func (t *Tree) CliqueMarginal(ctx context.Context, key inference.Key) (inference.FactorGraph, error) {
	c, err := t.Clique(key)
	if err != nil {
		return nil, err
	}
	return c.Marginal(ctx, t.root, t.eliminate)
}

// Shortcut returns P(S\B | B) for the clique holding key relative to the
// clique holding ancestorKey.
func (t *Tree) Shortcut(ctx context.Context, key, ancestorKey inference.Key) (inference.BayesNet, error) {
	c, err := t.Clique(key)
	if err != nil {
		return nil, err
	}
	b, err := t.Clique(ancestorKey)
	if err != nil {
		return nil, err
	}
	return c.Shortcut(ctx, b, t.eliminate)
}

// Marginal returns the marginal density of a single variable as a Bayes net
// holding one conditional without parents.
func (t *Tree) Marginal(ctx context.Context, key inference.Key) (inference.BayesNet, error) {
	ctx, span := tracer.Start(ctx, "Tree.Marginal")
	defer span.End()

	joint, err := t.CliqueMarginal(ctx, key)
	if err != nil {
		return nil, err
	}
	bn, err := eliminateReduced(ctx, metricMarginal, joint, []inference.Key{key}, 1, t.eliminate)
	if err != nil {
		return nil, cliqueErrorf(opMarginal, err)
	}
	return bn, nil
}

// Equals compares both trees clique by clique in pre-order.
func (t *Tree) Equals(other *Tree, tol float64) bool {
	if other == nil {
		return false
	}
	a, b := t.Cliques(), other.Cliques()
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

// Print writes every clique in pre-order, indented by depth.
func (t *Tree) Print(w io.Writer, label string, kf inference.KeyFormatter) {
	if label != "" {
		fmt.Fprintln(w, label)
	}
	_ = Walk(t.root, WithOnVisit(func(c *Clique, depth int) error {
		c.Print(w, strings.Repeat("  ", depth)+"-", kf)
		return nil
	}))
}

// Validate checks the running-intersection property: every separator key of
// a non-root clique must be a frontal or separator key of its parent.
func (t *Tree) Validate() error {
	err := Walk(t.root, WithOnVisit(func(c *Clique, _ int) error {
		if c.IsRoot() {
			return nil
		}
		if c.conditional == nil {
			return ErrNilConditional
		}
		p, err := c.Parent()
		if err != nil {
			return err
		}
		parentKeys := inference.Union(p.Frontals(), p.Separator())
		if !inference.ContainsAll(parentKeys, c.Separator()) {
			missing := inference.Difference(c.Separator(), parentKeys)
			return fmt.Errorf("separator keys %v of clique %v: %w", missing, c.Frontals(), ErrRunningIntersection)
		}
		return nil
	}))
	if err != nil {
		return cliqueErrorf(opValidate, err)
	}
	return nil
}

// Walk traverses the whole tree; see the package-level Walk.
func (t *Tree) Walk(opts ...WalkOption) error {
	return Walk(t.root, opts...)
}
