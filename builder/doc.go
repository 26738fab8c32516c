// Package builder provides deterministic, "functional-options"-style
// generators of Gaussian clique trees. They give the cliquetree package
// realistic fixtures for tests, benchmarks and the command-line tool.
//
// The package offers the following key components:
//
//   - Shapes (Constructor implementations):
//     – Chain:       every clique hangs below the previous one.
//     – Star:        one root, every other clique is a leaf of it.
//     – Binary:      heap-ordered complete binary tree.
//     – Random:      uniform random recursive tree (needs an RNG).
//     – FromParents: explicit parent indices.
//   - Configuration primitives:
//     – BuilderOption:  a function that mutates builderConfig before use.
//     – builderConfig:  RNG, key scheme, coefficient source, clique sizes.
//   - Key schemes (KeyFn implementations):
//     – DefaultKeyFn:   plain integer keys 0, 1, 2, …
//     – SymbolKeyFn:    symbol keys x0, x1, … for a chosen character.
//   - Coefficient distributions (CoefficientFn implementations):
//     – DefaultCoefficientFn, ConstantCoefficientFn,
//     – UniformCoefficientFn, NormalCoefficientFn.
//
// Every clique i receives WithFrontals fresh keys. A non-root clique draws
// its separator from the keys (frontals and separator) of its parent, so
// the running-intersection property holds by construction. Conditionals
// have an upper-triangular R whose diagonal is bounded away from zero, so
// the joint density is always proper.
//
// Guarantees:
//
//   - Determinism: same shape, options and seed ⇒ identical trees.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Sentinel errors (ErrTooFewCliques, ErrNeedRandSource, ErrBadParent, …)
//     wrapped with the constructor name for runtime parameter problems.
//
// The returned root must stay referenced for as long as the tree is used:
// children only observe their parent weakly.
package builder
