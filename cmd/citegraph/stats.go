package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citegraph/citegraph/internal/edge"
	"github.com/citegraph/citegraph/internal/storage"
)

var statsDBPath string

func init() {
	statsCmd.Flags().StringVar(&statsDBPath, "db", "citegraph.db", "SQLite database path")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show graph statistics for a crawl database",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

// StatsResult is the output of the stats command.
type StatsResult struct {
	Papers         int `json:"papers"`
	Edges          int `json:"edges"`
	DuplicatePairs int `json:"duplicate_pairs"`
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(statsDBPath)
	if err != nil {
		exitWithError(ExitDataError, "opening database: %v", err)
	}
	defer db.Close()

	papers, err := db.CountPapers()
	if err != nil {
		exitWithError(ExitDataError, "counting papers: %v", err)
	}
	edges, err := db.AllEdges()
	if err != nil {
		exitWithError(ExitDataError, "reading edges: %v", err)
	}

	// The composite primary key should make this impossible; reported
	// anyway as an integrity check.
	dupes := edge.FindDuplicates(edges)

	result := StatsResult{
		Papers:         papers,
		Edges:          len(edges),
		DuplicatePairs: len(dupes),
	}

	if humanOutput {
		fmt.Printf("Papers: %d\nEdges: %d\n", result.Papers, result.Edges)
		if result.DuplicatePairs > 0 {
			fmt.Printf("Duplicate edge pairs: %d\n", result.DuplicatePairs)
		}
		return nil
	}
	return outputJSON(result)
}
