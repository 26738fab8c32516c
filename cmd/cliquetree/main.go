// SPDX-License-Identifier: MIT

// Package main provides a CLI for generating and querying Gaussian clique
// trees stored as YAML documents.
//
// The CLI supports:
//   - generate: Build a random tree of a given shape and write it as YAML
//   - print: Print every clique of a tree
//   - stats: Report size, depth and cache census of a tree
//   - marginal: Marginal density of a single variable
//   - separator: Separator marginal P(S) of the clique owning a key
//   - shortcut: Shortcut P(S\B | B) between a clique and an ancestor
//   - compare: Compare two trees within the configured tolerance
//   - config show: Print the effective configuration
//
// Usage:
//
//	cliquetree [flags] <command>
//
// Tree arguments accept "-" for standard input.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	Execute(ctx)
}
