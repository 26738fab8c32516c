// SPDX-License-Identifier: MIT

// Package cliquetree implements the clique (junction) tree produced by
// variable elimination and the recursive, memoized marginal computations on
// it.
//
// What:
//
//   - Clique: one node. It owns its conditional p(F|S) and its children and
//     observes its parent through a weak pointer. It lazily caches P(S|R),
//     the density of its separator given the root R.
//   - Tree: the root plus an index from frontal keys to cliques, the
//     elimination strategy and a logger.
//
// Queries:
//
//   - SeparatorMarginal(R): P(S|R), computed from the parent's P(Sp|R) and
//     the parent conditional, eliminated on a reduced (0..n-1) key space,
//     restored and cached. Every clique on the path to R ends up cached.
//   - Shortcut(B): P(S\B | B) for a strict ancestor B. Not cached.
//   - Marginal(R): the clique conditional plus its separator marginal.
//   - DeleteCachedShortcuts: clears a clique's cache and, only if it was
//     set, its descendants' caches.
//
// Concurrency:
//
//	Queries may run concurrently. Each clique guards its cache with a mutex
//	and collapses concurrent cache misses with a singleflight.Group, so each
//	clique eliminates at most once per cache lifetime. No lock is held while
//	recursing to the parent. Building a tree (AddChild) and invalidating it
//	concurrently with queries is not linearizable; serialize those.
//
// Observability:
//
//	Spans are emitted through the global OpenTelemetry tracer provider and
//	cache/elimination counters through the Prometheus default registerer.
//
// Errors:
//
//   - ErrNoParent, ErrParentExpired, ErrNilClique, ErrNotAncestor,
//     ErrAlreadyAttached: structural misuse.
//   - ErrNilEliminate, ErrNilConditional: incomplete configuration.
//   - ErrUnknownKey, ErrDuplicateFrontal, ErrRunningIntersection: tree index
//     and validation failures.
//   - Elimination failures are returned wrapped; errors.Is matches the
//     strategy's own sentinels.
package cliquetree
