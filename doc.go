// Package bayestree is an in-memory toolkit for Gaussian clique trees
// (Bayes trees): building them, storing them, and answering marginal
// queries on them with lazily cached separator marginals.
//
// What is in the box?
//
//	• Inference primitives: keys, factor graphs, Bayes nets, reducing permutations
//	• Gaussian densities: information-form factors, square-root conditionals, elimination
//	• Clique trees: separator marginals, shortcuts, clique and variable marginals
//	• Builders: chain, star, binary and random tree shapes with random conditionals
//	• Persistence: YAML documents for whole trees
//
// Everything is organized under flat subpackages:
//
//	inference       Key, Factor, Conditional, FactorGraph, BayesNet, EliminateFunc, permutations
//	gaussian        Factor, Conditional, Eliminate, Combine, Optimize
//	cliquetree      Clique, Tree, SeparatorMarginal, Shortcut, Marginal, Walk
//	builder         Build, BuildTree, Chain, Star, Binary, Random, FromParents
//	treeio          Encode, Decode, Save, Load
//	cmd/cliquetree  command-line front end (generate, print, stats, queries)
//
// Quick ASCII example:
//
//	        p(x0)
//	       /     \
//	p(x1 | x0)  p(x2 | x0)
//	     |
//	p(x3 | x1)
//
// represents a four-clique tree. Asking for the separator marginal of the
// x3 clique computes and caches P(x0) at the x1 clique, then P(x1) at the
// x3 clique; later queries below x1 reuse both.
//
//	go get github.com/katalvlaran/bayestree
package bayestree
