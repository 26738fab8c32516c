// SPDX-License-Identifier: MIT

package cliquetree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/bayestree/inference"
)

var tracer = otel.Tracer("github.com/katalvlaran/bayestree/cliquetree")

// separatorFlightKey names the single in-flight computation per clique.
const separatorFlightKey = "separator-marginal"

// SeparatorMarginal returns P(S|R), the density of c's separator given the
// ancestor R (normally the tree root), as a factor graph.
//
// Implementation:
//   - Stage 1: cache hit → return the cached graph, no elimination.
//   - Stage 2: c == R → the empty graph (cached, never eliminated).
//   - Stage 3: otherwise take the parent's P(Sp|R), append the parent
//     conditional as a factor, reduce keys to 0..n-1, eliminate keeping
//     exactly S, restore the keys and cache the result.
//
// Every clique between c and R is cached as a side effect. A failed
// elimination caches nothing at the failing clique; cliques completed
// deeper in the recursion keep their caches. A result whose computation
// overlapped DeleteCachedShortcuts on c or an ancestor is returned but not
// cached. Callers joining a computation cancelled by another caller's
// context retry under their own.
//
// Errors:
//   - ErrNilClique, ErrNilEliminate for nil arguments.
//   - ErrNoParent / ErrParentExpired when the walk to R breaks.
//   - ctx.Err() when the context is done before a clique is computed.
//   - the strategy's own error, wrapped.
func (c *Clique) SeparatorMarginal(ctx context.Context, root *Clique, eliminate inference.EliminateFunc) (inference.FactorGraph, error) {
	if root == nil {
		return nil, cliqueErrorf(opSeparatorMarginal, ErrNilClique)
	}
	if eliminate == nil {
		return nil, cliqueErrorf(opSeparatorMarginal, ErrNilEliminate)
	}

	ctx, span := tracer.Start(ctx, "Clique.SeparatorMarginal", trace.WithAttributes(
		attribute.Int("frontals", len(c.Frontals())),
		attribute.Int("separator", len(c.Separator())),
	))
	defer span.End()

	if g, ok := c.cachedSeparatorMarginal(); ok {
		cacheHits.Inc()
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return g.Clone(), nil
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	for {
		led := false
		v, err, _ := c.flight.Do(separatorFlightKey, func() (any, error) {
			led = true
			// A concurrent flight may have filled the cache since the check above.
			g, ok, gen := c.cacheState()
			if ok {
				return g, nil
			}
			cacheMisses.Inc()

			g, err := c.computeSeparatorMarginal(ctx, root, eliminate)
			if err != nil {
				return nil, err
			}
			c.store(ctx, root, g, gen)
			return g, nil
		})
		if err != nil && !led && isContextErr(err) && ctx.Err() == nil {
			// Joined a flight cancelled by its leader; ours is still live.
			span.AddEvent("retry after shared cancellation")
			continue
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return v.(inference.FactorGraph).Clone(), nil
	}
}

// store caches g unless c was invalidated since gen was read, or the parent
// lost its own cache meanwhile. Either would leave c cached below an
// uncached ancestor, out of reach of DeleteCachedShortcuts. The parent is
// checked while c.mu is held, so an invalidation that clears the parent
// afterwards is guaranteed to reach c.
func (c *Clique) store(ctx context.Context, root *Clique, g inference.FactorGraph, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		c.log().DebugContext(ctx, "cliquetree: separator marginal discarded, clique invalidated during computation",
			slog.String("frontals", inference.FormatKeys(c.Frontals(), nil)))
		return
	}
	if c != root {
		if p, err := c.Parent(); err != nil || !p.isCached() {
			c.log().DebugContext(ctx, "cliquetree: separator marginal discarded, parent invalidated during computation",
				slog.String("frontals", inference.FormatKeys(c.Frontals(), nil)))
			return
		}
	}
	c.cached, c.hasCache = g, true
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (c *Clique) computeSeparatorMarginal(ctx context.Context, root *Clique, eliminate inference.EliminateFunc) (inference.FactorGraph, error) {
	if c == root {
		return inference.FactorGraph{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.conditional == nil {
		return nil, cliqueErrorf(opSeparatorMarginal, ErrNilConditional)
	}
	parent, err := c.Parent()
	if err != nil {
		return nil, cliqueErrorf(opSeparatorMarginal, err)
	}

	// P(Cp|R) = P(Fp|Sp) P(Sp|R); the parent call returns a private copy.
	pCp, err := parent.SeparatorMarginal(ctx, root, eliminate)
	if err != nil {
		return nil, err
	}
	if parent.conditional != nil {
		pCp.Push(parent.conditional.ToFactor())
	}

	separator := c.conditional.Parents()
	c.log().DebugContext(ctx, "cliquetree: separator marginal cache miss",
		slog.String("frontals", inference.FormatKeys(c.Frontals(), nil)),
		slog.Int("separator", len(separator)),
		slog.Int("factors", pCp.Size()),
	)

	bn, err := eliminateReduced(ctx, metricSeparatorMarginal, pCp, separator, len(separator), eliminate)
	if err != nil {
		return nil, cliqueErrorf(opSeparatorMarginal, err)
	}
	return bn.AsFactorGraph(), nil
}

// Marginal returns the joint density of c's frontal and separator keys as
// the separator marginal P(S|R) followed by the conditional p(F|S). Nothing
// beyond the separator marginal is cached.
func (c *Clique) Marginal(ctx context.Context, root *Clique, eliminate inference.EliminateFunc) (inference.FactorGraph, error) {
	ctx, span := tracer.Start(ctx, "Clique.Marginal")
	defer span.End()

	pC, err := c.SeparatorMarginal(ctx, root, eliminate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if c.conditional != nil {
		pC.Push(c.conditional.ToFactor())
	}
	return pC, nil
}

// DeleteCachedShortcuts clears the separator marginal of c and of its
// descendants. A descendant can only be cached if c is, so an empty cache
// at c ends the recursion without visiting the subtree. Idempotent.
func (c *Clique) DeleteCachedShortcuts() {
	c.mu.Lock()
	had := c.hasCache
	c.cached, c.hasCache = nil, false
	c.generation++
	c.mu.Unlock()
	if !had {
		return
	}

	cachesInvalidated.Inc()
	for _, child := range c.children {
		child.DeleteCachedShortcuts()
	}
}

func (c *Clique) cachedSeparatorMarginal() (inference.FactorGraph, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached, c.hasCache
}

// cacheState also returns the generation the cache was read at.
func (c *Clique) cacheState() (inference.FactorGraph, bool, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached, c.hasCache, c.generation
}

// eliminateReduced runs eliminate on graph rewritten to the dense key range
// 0..n-1 and maps the resulting Bayes net back to the original keys. The
// input graph is left untouched since rekeying copies factors.
func eliminateReduced(ctx context.Context, operation string, graph inference.FactorGraph, targets []inference.Key, nrFrontals int, eliminate inference.EliminateFunc) (inference.BayesNet, error) {
	reduction := inference.NewReducingPermutation(graph.Keys())
	inverse := inference.InverseOf(reduction)

	reduced, err := graph.Rekey(inverse)
	if err != nil {
		return nil, fmt.Errorf("reduce graph: %w", err)
	}
	reducedTargets, err := inverse.Reduce(targets)
	if err != nil {
		return nil, fmt.Errorf("reduce targets: %w", err)
	}

	start := time.Now()
	bn, err := eliminate(ctx, reduced, reducedTargets, nrFrontals)
	eliminationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		eliminationErrors.WithLabelValues(operation).Inc()
		return nil, fmt.Errorf("eliminate: %w", err)
	}

	restored, err := bn.Rekey(reduction.Mapping())
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return restored, nil
}
