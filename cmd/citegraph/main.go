// Package main provides the citegraph CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citegraph",
	Short: "Citation graph extraction and crawling",
	Long: `citegraph builds directed citation graphs from research papers.

Core features:
  - Reference extraction from paper PDFs (header/footer filtering,
    bibliography location, citation segmentation)
  - Fuzzy matching of citations against the local paper corpus
  - Bounded breadth-first crawling of backward references and forward
    citations via the Semantic Scholar citation index

Papers and edges are stored in SQLite. All commands output JSON by
default for scripting; pass --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
