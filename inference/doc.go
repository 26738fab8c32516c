// SPDX-License-Identifier: MIT

// Package inference defines the vocabulary shared by every density type and
// by the clique-tree core: variable keys, key formatting, the Factor and
// Conditional contracts, factor graphs, Bayes nets, the pluggable
// elimination strategy and the reducing permutation used to run local
// elimination problems on compact indices.
//
// What:
//
//   - Key: a 64-bit variable identifier. Symbol('x', 3) packs a character
//     and an index into one key, the way factor-graph users usually name
//     poses and landmarks.
//   - Factor / Conditional: density contracts implemented by concrete
//     packages (see package gaussian). Both are immutable; Rekey returns a
//     copy with rewritten variable references.
//   - FactorGraph / BayesNet: ordered collections of factors and
//     conditionals. Nil entries are tolerated and skipped.
//   - EliminateFunc: (graph, targets, nrFrontals) → BayesNet over targets.
//   - Permutation / Reduction: a bijection between a sparse key universe and
//     the dense range 0..n-1.
//
// Determinism:
//
//   - FactorGraph.Keys and every key-set helper return ascending keys.
//   - NewReducingPermutation orders compact indices by original key.
//
// Errors:
//
//   - ErrKeyNotMapped       a rekey mapping has no entry for a key.
//   - ErrInvalidKey         ParseKey could not interpret its input.
//   - ErrNotInjective       a rekey mapping sends two keys to the same key.
package inference
