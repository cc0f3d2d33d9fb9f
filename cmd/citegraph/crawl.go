package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/citegraph/citegraph/internal/citation"
	"github.com/citegraph/citegraph/internal/config"
	"github.com/citegraph/citegraph/internal/crawl"
	"github.com/citegraph/citegraph/internal/paper"
	"github.com/citegraph/citegraph/internal/s2"
	"github.com/citegraph/citegraph/internal/storage"
)

var (
	crawlConfigPath string
	crawlParserURL  string
	crawlDepth      int
	crawlVerbose    bool
)

func init() {
	crawlCmd.Flags().StringVar(&crawlConfigPath, "config", "citegraph.yaml", "Crawl configuration file")
	crawlCmd.Flags().StringVar(&crawlParserURL, "parser-url", "", "Structured citation parser service URL (required)")
	crawlCmd.Flags().IntVar(&crawlDepth, "depth", 0, "Override max crawl depth from config")
	crawlCmd.Flags().BoolVar(&crawlVerbose, "verbose", false, "Enable debug logging")
	crawlCmd.MarkFlagRequired("parser-url")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl <paper-id>...",
	Short: "Crawl the citation graph from seed papers",
	Long: `Crawl the citation graph breadth-first from one or more seed papers,
expanding backward through PDF references and forward through the citation
index, up to the configured depth.

Seeds are external identifiers resolvable by Semantic Scholar:
DOI:10.1038/..., ARXIV:2106.15928, or a raw S2 paper ID.

Examples:
  citegraph crawl --parser-url http://localhost:4567 ARXIV:1706.03762
  citegraph crawl --config deep.yaml --depth 3 DOI:10.1038/nature14539`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCrawl,
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(crawlConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
		} else {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}
	}
	if crawlDepth > 0 {
		cfg.MaxDepth = crawlDepth
	}

	log, err := buildLogger(crawlVerbose)
	if err != nil {
		exitWithError(ExitError, "creating logger: %v", err)
	}
	defer log.Sync()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		exitWithError(ExitDataError, "opening database: %v", err)
	}
	defer db.Close()

	client := s2.NewClient(s2.WithRateLimit(cfg.RateLimit))
	parser := citation.NewHTTPParser(crawlParserURL)
	pdfs := crawl.DirPDFSource{Dir: cfg.PDFDir}
	crawler := crawl.New(cfg, db, client, pdfs, parser, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seeds, err := resolveSeeds(ctx, client, args)
	if err != nil {
		exitWithError(ExitDataError, "resolving seeds: %v", err)
	}

	summary, err := crawler.Run(ctx, seeds)
	if err != nil && ctx.Err() == nil {
		exitWithError(ExitError, "crawl failed: %v", err)
	}

	if humanOutput {
		fmt.Printf("Papers: %d expanded, %d skipped, %d failed, %d created\n",
			summary.PapersExpanded, summary.PapersSkipped, summary.PapersFailed, summary.PapersCreated)
		fmt.Printf("Citations: %d parsed, %d matched, %d rejected, %d unresolved\n",
			summary.CitationsParsed, summary.CitationsMatched, summary.CitationsRejected, summary.CitationsUnresolved)
		fmt.Printf("Edges created: %d\n", summary.EdgesCreated)
		if summary.GateFiltered > 0 {
			fmt.Printf("Keyword gate filtered: %d\n", summary.GateFiltered)
		}
		return nil
	}
	return outputJSON(summary)
}

// resolveSeeds turns external identifiers into paper records via the lookup
// service. Unresolvable seeds abort the crawl before it starts: a typo'd
// seed ID is a user error, not a per-paper failure.
func resolveSeeds(ctx context.Context, client *s2.Client, ids []string) ([]paper.Paper, error) {
	var seeds []paper.Paper
	for _, id := range ids {
		p, err := client.LookupByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("seed %q not found", id)
		}
		p.Source = paper.ImportSource{Type: "seed", ID: id}
		seeds = append(seeds, *p)
	}
	return seeds, nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
