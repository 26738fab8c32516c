// SPDX-License-Identifier: MIT
// Package: bayestree/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: Build(con, opts...). Resolves cfg, asks the
//     constructor for a topology, then generates one conditional per clique
//     in index order (parents always precede children).
//   - Shapes are declared here and implemented in impl_shapes.go.
//   - Determinism: same constructor, options and seed ⇒ identical trees.
//   - Safety: never panic; return sentinel errors wrapped with context.

package builder

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/bayestree/cliquetree"
	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
)

// Constructor produces a tree topology as parent indices: parents[0] is
// NoParent and parents[i] < i for every other clique. Constructors MUST
// validate parameters early and return sentinel errors, never panic.
type Constructor func(cfg builderConfig) ([]int, error)

// Build resolves the options, runs con and generates a Gaussian conditional
// for every clique. It returns the root; every other clique is reachable
// through Children.
//
// Generation per clique i, in index order:
//   - WithFrontals fresh keys from the key scheme.
//   - A separator of min(WithSeparator, |keys(parent)|) keys of the parent,
//     chosen at random with an RNG and as the leading parent keys without.
//   - R upper triangular with |R(i,i)| ≥ MinDiagonal, then S, then d, all
//     drawn row-major from the coefficient source.
//
// Complexity: O(n·(f·dim)·((f+s)·dim)) for n cliques.
//
// Errors: any constructor error, ErrBadParent for a malformed topology,
// ErrConstructFailed when a conditional cannot be formed.
func Build(con Constructor, opts ...BuilderOption) (*cliquetree.Clique, error) {
	if con == nil {
		return nil, fmt.Errorf("Build: nil constructor: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(opts...)

	parents, err := con(cfg)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	if err = validateParents("Build", parents); err != nil {
		return nil, err
	}

	cliques := make([]*cliquetree.Clique, len(parents))
	keys := make([][]inference.Key, len(parents))
	next := 0
	for i, p := range parents {
		frontals := make([]inference.Key, cfg.frontals)
		for j := range frontals {
			frontals[j] = cfg.keyFn(next)
			next++
		}
		var separator []inference.Key
		if p != NoParent {
			separator = pickSeparator(cfg, keys[p])
		}

		cond, err := newConditional(cfg, frontals, separator)
		if err != nil {
			return nil, fmt.Errorf("Build: clique %d: %w: %w", i, ErrConstructFailed, err)
		}
		cliques[i] = cliquetree.NewClique(cond)
		keys[i] = cond.Keys()
		if p != NoParent {
			if err = cliques[p].AddChild(cliques[i]); err != nil {
				return nil, fmt.Errorf("Build: clique %d: %w: %w", i, ErrConstructFailed, err)
			}
		}
	}

	return cliques[0], nil
}

// BuildTree is Build followed by cliquetree.New with gaussian.Eliminate.
func BuildTree(con Constructor, opts ...BuilderOption) (*cliquetree.Tree, error) {
	root, err := Build(con, opts...)
	if err != nil {
		return nil, err
	}
	return cliquetree.New(root, gaussian.Eliminate)
}

// Shape names a parameterless topology family.
type Shape string

// Supported shapes.
const (
	ShapeChain  Shape = "chain"
	ShapeStar   Shape = "star"
	ShapeBinary Shape = "binary"
	ShapeRandom Shape = "random"
)

// Shapes lists the supported shapes in documentation order.
func Shapes() []Shape {
	return []Shape{ShapeChain, ShapeStar, ShapeBinary, ShapeRandom}
}

// ParseShape resolves a case-insensitive shape name.
func ParseShape(s string) (Shape, error) {
	shape := Shape(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Shapes() {
		if shape == known {
			return shape, nil
		}
	}
	return "", fmt.Errorf("ParseShape(%q): %w", s, ErrUnknownShape)
}

// Constructor returns the constructor of shape s with n cliques.
func (s Shape) Constructor(n int) (Constructor, error) {
	switch s {
	case ShapeChain:
		return Chain(n), nil
	case ShapeStar:
		return Star(n), nil
	case ShapeBinary:
		return Binary(n), nil
	case ShapeRandom:
		return Random(n), nil
	default:
		return nil, fmt.Errorf("Shape(%q): %w", string(s), ErrUnknownShape)
	}
}
