// SPDX-License-Identifier: MIT
// Package: bayestree/builder
//
// impl_shapes.go - topology constructors.
//
// Contract:
//   - n ≥ MinCliques (else ErrTooFewCliques).
//   - Index 0 is the root; parents precede children.
//   - Random needs an RNG once the shape is not forced (n > 2).
//
// Complexity: O(n) time and space for every shape.

package builder

// Chain returns a path of n cliques: clique i hangs below clique i-1.
func Chain(n int) Constructor {
	return func(_ builderConfig) ([]int, error) {
		if err := validateMin(MethodChain, n, MinCliques); err != nil {
			return nil, err
		}
		parents := make([]int, n)
		parents[0] = NoParent
		for i := 1; i < n; i++ {
			parents[i] = i - 1
		}
		return parents, nil
	}
}

// Star returns a root with n-1 leaf children.
func Star(n int) Constructor {
	return func(_ builderConfig) ([]int, error) {
		if err := validateMin(MethodStar, n, MinCliques); err != nil {
			return nil, err
		}
		parents := make([]int, n)
		parents[0] = NoParent
		return parents, nil
	}
}

// Binary returns a heap-ordered binary tree: clique i hangs below (i-1)/2.
func Binary(n int) Constructor {
	return func(_ builderConfig) ([]int, error) {
		if err := validateMin(MethodBinary, n, MinCliques); err != nil {
			return nil, err
		}
		parents := make([]int, n)
		parents[0] = NoParent
		for i := 1; i < n; i++ {
			parents[i] = (i - 1) / 2
		}
		return parents, nil
	}
}

// Random returns a uniform random recursive tree: clique i hangs below a
// clique drawn uniformly from 0..i-1.
func Random(n int) Constructor {
	return func(cfg builderConfig) ([]int, error) {
		if err := validateMin(MethodRandom, n, MinCliques); err != nil {
			return nil, err
		}
		if cfg.rng == nil && n > 2 {
			return nil, builderErrorf(MethodRandom, ErrNeedRandSource)
		}
		parents := make([]int, n)
		parents[0] = NoParent
		// parents[1] is forced to 0.
		for i := 2; i < n; i++ {
			parents[i] = cfg.rng.Intn(i)
		}
		return parents, nil
	}
}

// FromParents returns the topology given by explicit parent indices.
// The slice is copied.
func FromParents(parents []int) Constructor {
	own := append([]int(nil), parents...)
	return func(_ builderConfig) ([]int, error) {
		if err := validateParents(MethodFromParents, own); err != nil {
			return nil, err
		}
		return append([]int(nil), own...), nil
	}
}
