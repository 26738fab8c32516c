// SPDX-License-Identifier: MIT

package cliquetree

import (
	"context"
	"log/slog"
)

// Option configures a Tree at construction.
type Option func(*Tree)

// WithLogger sets the logger used by the tree and all of its cliques.
// Passing nil keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WalkOption configures a traversal.
type WalkOption func(*WalkOptions)

// WalkOptions controls Walk: hooks, depth limit and cancellation.
type WalkOptions struct {
	// Ctx aborts the walk when done; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, runs before a clique's children (pre-order).
	// Returning an error aborts the walk.
	OnVisit func(c *Clique, depth int) error

	// OnExit, if non-nil, runs after a clique's children (post-order).
	// Returning an error aborts the walk.
	OnExit func(c *Clique, depth int) error

	// MaxDepth, if non-negative, skips cliques deeper than the limit.
	// 0 visits only the start clique. Default -1 (no limit).
	MaxDepth int
}

// DefaultWalkOptions returns a background context, no hooks and no depth limit.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the walk context. A nil context is ignored.
func WithContext(ctx context.Context) WalkOption {
	return func(o *WalkOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(c *Clique, depth int) error) WalkOption {
	return func(o *WalkOptions) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(c *Clique, depth int) error) WalkOption {
	return func(o *WalkOptions) { o.OnExit = fn }
}

// WithMaxDepth limits the walk depth; negative means unlimited.
func WithMaxDepth(limit int) WalkOption {
	return func(o *WalkOptions) { o.MaxDepth = limit }
}
