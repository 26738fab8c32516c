// SPDX-License-Identifier: MIT

// Package treeio reads and writes Gaussian clique trees as YAML.
//
// A document nests cliques exactly like the tree:
//
//	version: 1
//	root:
//	  frontals: [x0]
//	  dims: [1]
//	  r: [[2]]
//	  d: [1]
//	  children:
//	    - frontals: [x1]
//	      parents: [x0]
//	      dims: [1, 1]
//	      r: [[1.5]]
//	      s: [[0.5]]
//	      d: [0.3]
//
// Keys are written with inference.SymbolFormatter and read back with
// inference.ParseKey, so both symbol keys ("x3") and plain integers ("42")
// round-trip. A root without frontals stands for an empty root clique.
//
// Only *gaussian.Conditional cliques can be encoded.
package treeio
