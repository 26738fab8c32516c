// SPDX-License-Identifier: MIT

package treeio

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/cliquetree"
	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
)

// Version is the document version written by this package.
const Version = 1

// Document is the top-level YAML object.
type Document struct {
	Version int   `yaml:"version"`
	Root    *Node `yaml:"root"`
}

// Node is one clique: the square-root parameters of p(frontals | parents)
// and the child cliques in order.
type Node struct {
	Frontals []string    `yaml:"frontals,flow"`
	Parents  []string    `yaml:"parents,omitempty,flow"`
	Dims     []int       `yaml:"dims,omitempty,flow"`
	R        [][]float64 `yaml:"r,omitempty,flow"`
	S        [][]float64 `yaml:"s,omitempty,flow"`
	D        []float64   `yaml:"d,omitempty,flow"`
	Children []*Node     `yaml:"children,omitempty"`
}

// FromTree converts the tree rooted at root into a Document.
func FromTree(root *cliquetree.Clique) (*Document, error) {
	if root == nil {
		return nil, ErrMissingRoot
	}
	node, err := toNode(root)
	if err != nil {
		return nil, err
	}
	return &Document{Version: Version, Root: node}, nil
}

func toNode(c *cliquetree.Clique) (*Node, error) {
	n := &Node{}
	if cond := c.Conditional(); cond != nil {
		g, ok := cond.(*gaussian.Conditional)
		if !ok {
			return nil, fmt.Errorf("clique %s is %T: %w",
				inference.FormatKeys(cond.Frontals(), inference.SymbolFormatter), cond, ErrUnsupportedConditional)
		}
		n.Frontals = formatKeys(g.Frontals())
		n.Parents = formatKeys(g.Parents())
		n.Dims = g.Dims()
		n.R = rows(g.R())
		if s := g.S(); s != nil {
			n.S = rows(s)
		}
		n.D = mat.Col(nil, 0, g.D())
	}
	for _, child := range c.Children() {
		cn, err := toNode(child)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

// Tree rebuilds the cliques described by d and returns the root.
func (d *Document) Tree() (*cliquetree.Clique, error) {
	if d == nil || d.Root == nil {
		return nil, ErrMissingRoot
	}
	if d.Version != Version {
		return nil, fmt.Errorf("version %d: %w", d.Version, ErrUnsupportedVersion)
	}
	return fromNode(d.Root, "root")
}

func fromNode(n *Node, path string) (*cliquetree.Clique, error) {
	var c *cliquetree.Clique
	if len(n.Frontals) == 0 {
		if path != "root" {
			return nil, fmt.Errorf("%s: clique without frontals: %w", path, ErrMalformed)
		}
		c = cliquetree.NewClique(nil)
	} else {
		cond, err := n.conditional()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		c = cliquetree.NewClique(cond)
	}

	for i, child := range n.Children {
		if child == nil {
			return nil, fmt.Errorf("%s.children[%d]: empty entry: %w", path, i, ErrMalformed)
		}
		cc, err := fromNode(child, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if err = c.AddChild(cc); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (n *Node) conditional() (*gaussian.Conditional, error) {
	frontals, err := parseKeys(n.Frontals)
	if err != nil {
		return nil, err
	}
	parents, err := parseKeys(n.Parents)
	if err != nil {
		return nil, err
	}
	r, err := dense(n.R)
	if err != nil {
		return nil, fmt.Errorf("r: %w", err)
	}
	var s mat.Matrix
	if len(n.S) > 0 {
		sd, err := dense(n.S)
		if err != nil {
			return nil, fmt.Errorf("s: %w", err)
		}
		s = sd
	}
	if len(n.D) == 0 {
		return nil, fmt.Errorf("d is empty: %w", ErrMalformed)
	}
	return gaussian.NewConditional(frontals, parents, n.Dims, r, s, mat.NewVecDense(len(n.D), n.D))
}

func formatKeys(keys []inference.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = inference.SymbolFormatter(k)
	}
	return out
}

func parseKeys(ss []string) ([]inference.Key, error) {
	out := make([]inference.Key, len(ss))
	for i, s := range ss {
		k, err := inference.ParseKey(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		out[i] = k
	}
	return out, nil
}

func rows(m mat.Matrix) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

func dense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty matrix: %w", ErrMalformed)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), cols, ErrMalformed)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}
