// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bayestree/cliquetree"
	"github.com/katalvlaran/bayestree/gaussian"
	"github.com/katalvlaran/bayestree/inference"
	"github.com/katalvlaran/bayestree/internal/cli"
	"github.com/katalvlaran/bayestree/treeio"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logger     *slog.Logger
	keyFmt     inference.KeyFormatter

	// Persistent flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "cliquetree",
	Short: "Gaussian clique tree toolkit",
	Long: `cliquetree - Gaussian clique tree toolkit

Generates Bayes trees of Gaussian conditionals, stores them as YAML and
answers marginal, separator and shortcut queries on them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile, cmd.Flags())
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		if err := cfg.Validate(); err != nil {
			return cli.ConfigError("validating configuration", err)
		}
		if logger, err = cli.NewLogger(cmd.ErrOrStderr(), cfg.Log); err != nil {
			return cli.ConfigError("configuring logger", err)
		}
		if keyFmt, err = cli.KeyFormatter(cfg.Keys.Format); err != nil {
			return cli.ConfigError("configuring key format", err)
		}
		logger.Debug("configuration loaded", "path", configPath, "command", cmd.Name())
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command group IDs
const (
	groupTree    = "tree"
	groupQuery   = "query"
	groupUtility = "utility"
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: auto-discover cliquetree.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", cli.LogFormatText, "log format: text or json")
	pf.String("keys", cli.KeyFormatSymbol, "key format: symbol (x3) or index (plain integers)")
	pf.Float64("tolerance", 1e-9, "absolute tolerance for tree comparison")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupTree, Title: "Trees:"},
		&cobra.Group{ID: groupQuery, Title: "Queries:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	for _, c := range []*cobra.Command{generateCmd, printCmd, statsCmd, compareCmd} {
		c.GroupID = groupTree
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{marginalCmd, separatorCmd, shortcutCmd} {
		c.GroupID = groupQuery
		rootCmd.AddCommand(c)
	}
	configCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.ExitWithError(err)
	}
}

// loadTree reads a tree document from path ("-" for stdin) and indexes it.
func loadTree(cmd *cobra.Command, path string) (*cliquetree.Tree, error) {
	var (
		root *cliquetree.Clique
		err  error
	)
	if path == "-" {
		root, err = treeio.Decode(cmd.InOrStdin())
	} else {
		root, err = treeio.Load(path)
	}
	if err != nil {
		return nil, cli.InputError("loading tree "+path, err)
	}

	tree, err := cliquetree.New(root, gaussian.Eliminate, cliquetree.WithLogger(logger))
	if err != nil {
		return nil, cli.InputError("indexing tree "+path, err)
	}
	logger.Debug("tree loaded", "path", path, "cliques", tree.Size())
	return tree, nil
}

// parseKey parses a key argument as printed by either key format.
func parseKey(s string) (inference.Key, error) {
	k, err := inference.ParseKey(s)
	if err != nil {
		return 0, cli.QueryError("parsing key", err)
	}
	return k, nil
}

// writeTree encodes root to path, or to w when path is empty or "-".
func writeTree(w io.Writer, path string, root *cliquetree.Clique) error {
	if path == "" || path == "-" {
		return treeio.Encode(w, root)
	}
	return treeio.Save(path, root)
}
