// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
	"github.com/katalvlaran/bayestree/internal/cli"
)

var marginalCmd = &cobra.Command{
	Use:   "marginal <tree.yaml> <key>",
	Short: "Marginal density of a single variable",
	Long: `Compute the marginal density of one variable and print it as a
conditional together with its mean and covariance.`,
	Example: `  cliquetree marginal tree.yaml x3
  cliquetree --keys index marginal tree.yaml 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(cmd, args[0])
		if err != nil {
			return err
		}
		key, err := parseKey(args[1])
		if err != nil {
			return err
		}

		bn, err := tree.Marginal(cmd.Context(), key)
		if err != nil {
			return cli.QueryError("marginal of "+keyFmt(key), err)
		}
		out := cmd.OutOrStdout()
		bn.Print(out, "marginal", keyFmt)
		return printMoments(out, bn.AsFactorGraph())
	},
}

var separatorCmd = &cobra.Command{
	Use:   "separator <tree.yaml> <key>",
	Short: "Separator marginal of the clique owning a key",
	Long: `Compute P(S), the marginal over the separator of the clique whose
frontal variables include key. Intermediate marginals are cached on the
path to the root; the census of cached cliques is reported.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(cmd, args[0])
		if err != nil {
			return err
		}
		key, err := parseKey(args[1])
		if err != nil {
			return err
		}

		graph, err := tree.SeparatorMarginal(cmd.Context(), key)
		if err != nil {
			return cli.QueryError("separator marginal of "+keyFmt(key), err)
		}
		out := cmd.OutOrStdout()
		graph.Print(out, "separator marginal", keyFmt)
		if graph.Size() > 0 {
			if err := printMoments(out, graph); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "cached separator marginals: %d\n", tree.NumCachedSeparatorMarginals())
		return nil
	},
}

var shortcutCmd = &cobra.Command{
	Use:   "shortcut <tree.yaml> <key> <ancestor-key>",
	Short: "Shortcut between a clique and one of its ancestors",
	Long: `Compute P(S\B | B), the conditional of the separator of the clique
owning key given the variables of the ancestor clique owning ancestor-key.`,
	Example: `  cliquetree shortcut tree.yaml x7 x0`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(cmd, args[0])
		if err != nil {
			return err
		}
		key, err := parseKey(args[1])
		if err != nil {
			return err
		}
		ancestor, err := parseKey(args[2])
		if err != nil {
			return err
		}

		bn, err := tree.Shortcut(cmd.Context(), key, ancestor)
		if err != nil {
			return cli.QueryError(fmt.Sprintf("shortcut %s -> %s", keyFmt(key), keyFmt(ancestor)), err)
		}
		bn.Print(cmd.OutOrStdout(), "shortcut", keyFmt)
		return nil
	},
}

// printMoments collapses graph into one Gaussian and prints its mean and
// covariance over the ascending keys of the graph.
func printMoments(w io.Writer, graph inference.FactorGraph) error {
	joint, err := gaussian.Combine(graph)
	if err != nil {
		return cli.QueryError("combining factors", err)
	}
	mean, cov, err := joint.Moments()
	if err != nil {
		return cli.QueryError("computing moments", err)
	}
	fmt.Fprintf(w, "keys: [%s]\n", inference.FormatKeys(joint.Keys(), keyFmt))
	fmt.Fprintf(w, "mean = %.6g\n", mat.Formatted(mean.T(), mat.Squeeze()))
	fmt.Fprintf(w, "cov  = %.6g\n", mat.Formatted(cov, mat.Prefix("       "), mat.Squeeze()))
	return nil
}
