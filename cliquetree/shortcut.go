// SPDX-License-Identifier: MIT

package cliquetree

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/bayestree/inference"
)

// Shortcut returns the conditional P(S\B | B) relating the part of c's
// separator not covered by the ancestor B to B's variables. The result is
// empty when c is B or when B already covers the whole separator.
//
// Implementation:
//   - D = separator(c) \ keys(B).
//   - Obtain the parent's shortcut to B, append the parent conditional.
//   - keep = (D ∩ present keys) followed by (keys(B) ∩ present keys), where
//     present keys are those of the assembled graph. Keys of D absent from
//     the graph are dropped.
//   - Eliminate on reduced keys with |D ∩ present| frontals and restore.
//
// Shortcuts are not cached; repeated calls recompute them.
//
// Errors:
//   - ErrNilClique, ErrNilEliminate for nil arguments.
//   - ErrNotAncestor if B is neither c nor one of its ancestors.
//   - ErrParentExpired, ctx.Err() and strategy errors as for SeparatorMarginal.
func (c *Clique) Shortcut(ctx context.Context, b *Clique, eliminate inference.EliminateFunc) (inference.BayesNet, error) {
	if b == nil {
		return nil, cliqueErrorf(opShortcut, ErrNilClique)
	}
	if eliminate == nil {
		return nil, cliqueErrorf(opShortcut, ErrNilEliminate)
	}
	ok, err := c.hasAncestor(b)
	if err != nil {
		return nil, cliqueErrorf(opShortcut, err)
	}
	if !ok {
		return nil, cliqueErrorf(opShortcut, ErrNotAncestor)
	}
	return c.shortcut(ctx, b, eliminate)
}

func (c *Clique) shortcut(ctx context.Context, b *Clique, eliminate inference.EliminateFunc) (inference.BayesNet, error) {
	if c == b {
		return inference.BayesNet{}, nil
	}
	bKeys := b.Keys()
	sMinusB := inference.Difference(c.Separator(), bKeys)
	if len(sMinusB) == 0 {
		return inference.BayesNet{}, nil
	}

	ctx, span := tracer.Start(ctx, "Clique.Shortcut", trace.WithAttributes(
		attribute.Int("separator_minus_b", len(sMinusB)),
	))
	defer span.End()

	bn, err := c.computeShortcut(ctx, b, bKeys, sMinusB, eliminate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return bn, nil
}

func (c *Clique) computeShortcut(ctx context.Context, b *Clique, bKeys, sMinusB []inference.Key, eliminate inference.EliminateFunc) (inference.BayesNet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parent, err := c.Parent()
	if err != nil {
		return nil, cliqueErrorf(opShortcut, err)
	}

	// P(Cp||B) = P(Fp|Sp) P(Sp||B)
	pSp, err := parent.shortcut(ctx, b, eliminate)
	if err != nil {
		return nil, err
	}
	pCp := pSp.AsFactorGraph()
	if parent.conditional != nil {
		pCp.Push(parent.conditional.ToFactor())
	}

	present := pCp.Keys()
	frontals := inference.Intersection(sMinusB, present)
	keep := append(frontals, inference.Intersection(bKeys, present)...)
	if dropped := len(sMinusB) - len(frontals); dropped > 0 {
		c.log().WarnContext(ctx, "cliquetree: shortcut keys absent from assembled graph",
			slog.String("frontals", inference.FormatKeys(c.Frontals(), nil)),
			slog.Int("dropped", dropped),
		)
	}

	bn, err := eliminateReduced(ctx, metricShortcut, pCp, keep, len(frontals), eliminate)
	if err != nil {
		return nil, cliqueErrorf(opShortcut, err)
	}
	return bn, nil
}

// hasAncestor reports whether a is c or lies on c's path to the root.
func (c *Clique) hasAncestor(a *Clique) (bool, error) {
	for cur := c; ; {
		if cur == a {
			return true, nil
		}
		if cur.IsRoot() {
			return false, nil
		}
		p, err := cur.Parent()
		if err != nil {
			return false, err
		}
		cur = p
	}
}
