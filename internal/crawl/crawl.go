// Package crawl orchestrates bounded BFS expansion of the citation graph.
//
// A crawl run starts from seed papers and expands each paper in two
// directions: backward through the references parsed from its PDF, and
// forward through an external citation index. The frontier queue and
// visited set are owned by the single goroutine running the BFS; workers
// only perform I/O (parsing, lookups) and hand their results back through
// one join point, so no crawl state is ever mutated concurrently.
package crawl

import (
	"context"

	"go.uber.org/zap"

	"github.com/citegraph/citegraph/internal/citation"
	"github.com/citegraph/citegraph/internal/config"
	"github.com/citegraph/citegraph/internal/edge"
	"github.com/citegraph/citegraph/internal/match"
	"github.com/citegraph/citegraph/internal/paper"
	"github.com/citegraph/citegraph/internal/refextract"
)

// Store is the persistence sink for papers and edges. Edge insertion must
// be idempotent on duplicate ordered pairs.
type Store interface {
	CreatePaper(p paper.Paper) error
	FindExisting(p paper.Paper) (*paper.Paper, error)
	AllPapers() ([]paper.Paper, error)
	InsertEdge(e edge.Edge) error
}

// Lookup is the external paper resolution capability: given a title or
// identifier, return zero or one candidate paper; given a paper, return the
// papers citing it. Implementations are expected to rate-limit themselves.
type Lookup interface {
	LookupByTitle(ctx context.Context, title string) (*paper.Paper, error)
	LookupByID(ctx context.Context, id string) (*paper.Paper, error)
	CitingPapers(ctx context.Context, id string) ([]paper.Paper, error)
}

// PDFSource returns the per-page text lines of a paper's PDF, or nil when
// no PDF is retrievable for it.
type PDFSource interface {
	PageTexts(p paper.Paper) ([][]string, error)
}

// Summary reports the outcome of one crawl run.
type Summary struct {
	PapersExpanded int `json:"papers_expanded"`
	PapersSkipped  int `json:"papers_skipped"`
	PapersFailed   int `json:"papers_failed"`
	PapersCreated  int `json:"papers_created"`

	CitationsParsed     int `json:"citations_parsed"`
	CitationsMatched    int `json:"citations_matched"`
	CitationsRejected   int `json:"citations_rejected"`
	CitationsUnresolved int `json:"citations_unresolved"`

	EdgesCreated int `json:"edges_created"`
	GateFiltered int `json:"gate_filtered"`
}

// Crawler runs bounded BFS crawls. All fields are set at construction and
// never mutated; per-run state lives in the frontier.
type Crawler struct {
	cfg     *config.Config
	store   Store
	lookup  Lookup
	pdfs    PDFSource
	parser  citation.Parser
	seg     *refextract.Segmenter
	matcher *match.Matcher
	log     *zap.Logger
}

// New creates a Crawler. A nil logger disables logging. A non-positive
// worker count is normalized to the default: the candidate pool sizes its
// semaphore from it, and a zero-capacity semaphore would block forever.
func New(cfg *config.Config, store Store, lookup Lookup, pdfs PDFSource, parser citation.Parser, log *zap.Logger) *Crawler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = config.Default().Concurrency
	}
	return &Crawler{
		cfg:     cfg,
		store:   store,
		lookup:  lookup,
		pdfs:    pdfs,
		parser:  parser,
		seg:     refextract.NewSegmenter(refextract.SegmenterConfig{ColumnMinWidth: cfg.ColumnMinWidth}),
		matcher: match.New(cfg.MatchThreshold),
		log:     log,
	}
}

// Run crawls the citation graph from the given seeds up to the configured
// depth. Seeds not yet in the store are persisted first. Cancellation is
// checked at every dequeue; on cancellation the partial summary is returned
// together with ctx.Err().
//
// Termination is guaranteed: a paper enters the visited set the moment it
// is dequeued and is never re-enqueued, and the depth bound caps the
// reachable set.
func (c *Crawler) Run(ctx context.Context, seeds []paper.Paper) (*Summary, error) {
	summary := &Summary{}
	f := newFrontier()

	for _, seed := range seeds {
		p, err := c.resolveOrCreate(seed, summary)
		if err != nil {
			c.log.Warn("persisting seed", zap.String("title", seed.Title), zap.Error(err))
			summary.PapersFailed++
			continue
		}
		f.enqueue(*p, 0)
	}

	for {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		item, ok := f.dequeue()
		if !ok {
			return summary, nil
		}
		if f.seen(item.p.ID) {
			summary.PapersSkipped++
			continue
		}
		f.markVisited(item.p.ID)

		if item.depth >= c.cfg.MaxDepth {
			summary.PapersSkipped++
			continue
		}

		c.log.Info("expanding paper",
			zap.String("id", item.p.ID),
			zap.String("title", item.p.Title),
			zap.Int("depth", item.depth))

		if err := c.expand(ctx, item, f, summary); err != nil {
			// Per-paper failures are isolated: log, count, continue.
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			c.log.Warn("paper expansion failed", zap.String("id", item.p.ID), zap.Error(err))
			summary.PapersFailed++
			continue
		}
		summary.PapersExpanded++
	}
}

// expand attempts both crawl directions for one dequeued paper.
func (c *Crawler) expand(ctx context.Context, item frontierItem, f *frontier, summary *Summary) error {
	if err := c.expandBackward(ctx, item, f, summary); err != nil {
		return err
	}
	return c.expandForward(ctx, item, f, summary)
}

// resolveOrCreate deduplicates a paper against the store by external IDs,
// creating it when genuinely new. The returned paper always has a store ID.
func (c *Crawler) resolveOrCreate(p paper.Paper, summary *Summary) (*paper.Paper, error) {
	existing, err := c.store.FindExisting(p)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if p.ID == "" {
		p.ID = paper.NewID()
	}
	if err := c.store.CreatePaper(p); err != nil {
		return nil, err
	}
	summary.PapersCreated++
	return &p, nil
}

// connect persists one citation edge. Self-edges (a malformed PDF citing
// itself) are dropped silently; other validation failures propagate.
func (c *Crawler) connect(e edge.Edge, summary *Summary) error {
	if err := e.ValidateForCreate(); err != nil {
		if err == edge.ErrSelfEdge {
			c.log.Debug("dropping self-edge", zap.String("id", e.SourceID))
			return nil
		}
		return err
	}
	if err := c.store.InsertEdge(e); err != nil {
		return err
	}
	summary.EdgesCreated++
	return nil
}

// maybeEnqueue applies the depth bound and keyword gate before enqueueing a
// newly discovered neighbor. Papers failing the gate stay recorded in the
// store but are not expanded further.
func (c *Crawler) maybeEnqueue(p paper.Paper, depth int, f *frontier, summary *Summary) {
	if depth+1 >= c.cfg.MaxDepth {
		return
	}
	if f.seen(p.ID) {
		return
	}
	if !c.passesGate(p) {
		summary.GateFiltered++
		c.log.Debug("keyword gate filtered paper", zap.String("title", p.Title))
		return
	}
	f.enqueue(p, depth+1)
}
