// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

var printLabel string

var printCmd = &cobra.Command{
	Use:   "print <tree.yaml>",
	Short: "Print every clique of a tree",
	Long:  `Print every clique in pre-order, indented by depth, with its conditional.`,
	Example: `  cliquetree print tree.yaml
  cliquetree generate --cliques 3 | cliquetree print -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(cmd, args[0])
		if err != nil {
			return err
		}
		tree.Print(cmd.OutOrStdout(), printLabel, keyFmt)
		return nil
	},
}

func init() {
	printCmd.Flags().StringVar(&printLabel, "label", "", "heading printed before the tree")
}
