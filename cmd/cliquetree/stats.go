// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bayestree/cliquetree"
	"github.com/katalvlaran/bayestree/inference"
	"github.com/katalvlaran/bayestree/internal/cli"
)

var statsWarm bool

var statsCmd = &cobra.Command{
	Use:   "stats <tree.yaml>",
	Short: "Report tree size, depth and cache census",
	Long: `Report the number of cliques, variables, the depth and widest clique of a
tree and whether it satisfies the running-intersection property.

With --warm every separator marginal is computed first, so the census
reports how many cliques hold a cached marginal afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(cmd, args[0])
		if err != nil {
			return err
		}
		s, err := collectStats(cmd, tree)
		if err != nil {
			return err
		}
		s.print(cmd)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsWarm, "warm", false, "compute every separator marginal before the census")
}

type treeStats struct {
	cliques  int
	keys     int
	depth    int
	leaves   int
	width    int
	cached   int
	validErr error
}

func collectStats(cmd *cobra.Command, tree *cliquetree.Tree) (treeStats, error) {
	s := treeStats{cliques: tree.Size(), keys: len(tree.Keys())}

	err := tree.Walk(cliquetree.WithContext(cmd.Context()), cliquetree.WithOnVisit(func(c *cliquetree.Clique, depth int) error {
		s.depth = max(s.depth, depth)
		s.width = max(s.width, len(c.Keys()))
		if len(c.Children()) == 0 {
			s.leaves++
		}
		return nil
	}))
	if err != nil {
		return s, cli.GeneralError("walking tree", err)
	}
	s.validErr = tree.Validate()

	if statsWarm {
		for _, c := range tree.Cliques() {
			if c.IsRoot() {
				continue
			}
			frontals := c.Frontals()
			if len(frontals) == 0 {
				continue
			}
			if _, err := tree.SeparatorMarginal(cmd.Context(), frontals[0]); err != nil {
				return s, cli.QueryError("separator marginal of "+inference.FormatKeys(frontals, keyFmt), err)
			}
		}
	}
	s.cached = tree.NumCachedSeparatorMarginals()
	return s, nil
}

func (s treeStats) print(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cliques:      %d\n", s.cliques)
	fmt.Fprintf(out, "Variables:    %d\n", s.keys)
	fmt.Fprintf(out, "Depth:        %d\n", s.depth)
	fmt.Fprintf(out, "Leaves:       %d\n", s.leaves)
	fmt.Fprintf(out, "Widest:       %d keys\n", s.width)
	fmt.Fprintf(out, "Cached:       %d\n", s.cached)
	if s.validErr != nil {
		fmt.Fprintf(out, "Valid:        no (%v)\n", s.validErr)
	} else {
		fmt.Fprintln(out, "Valid:        yes")
	}
}
