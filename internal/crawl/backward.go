package crawl

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/citegraph/citegraph/internal/citation"
	"github.com/citegraph/citegraph/internal/edge"
	"github.com/citegraph/citegraph/internal/match"
	"github.com/citegraph/citegraph/internal/paper"
	"github.com/citegraph/citegraph/internal/refextract"
)

// candidateOutcome is what one worker hands back for one citation candidate.
// Workers only parse, match, and look up; all store writes and frontier
// mutations happen in the merge loop on the BFS goroutine.
type candidateOutcome struct {
	raw    string
	cit    *citation.Citation
	reject citation.RejectReason
	res    match.Result
	looked *paper.Paper // external lookup result when unmatched
}

// expandBackward parses the paper's PDF bibliography and resolves each
// citation to a target paper, creating one edge per resolved citation.
// Absence of a PDF or of a reference section is a normal terminal outcome
// for this direction, not an error.
func (c *Crawler) expandBackward(ctx context.Context, item frontierItem, f *frontier, summary *Summary) error {
	pages, err := c.pdfs.PageTexts(item.p)
	if err != nil {
		c.log.Warn("reading PDF", zap.String("id", item.p.ID), zap.Error(err))
		return nil
	}
	if len(pages) == 0 {
		return nil
	}

	filtered := refextract.FilterRunningLines(pages)
	block := refextract.LocateReferenceBlock(filtered)
	if block == nil {
		c.log.Debug("no reference section", zap.String("id", item.p.ID))
		return nil
	}

	candidates, strategy := c.seg.Segment(block.Text)
	if len(candidates) == 0 {
		c.log.Info("segmentation produced zero citations",
			zap.String("id", item.p.ID),
			zap.String("origin", string(block.Origin)))
		return nil
	}
	c.log.Debug("segmented reference block",
		zap.String("id", item.p.ID),
		zap.String("strategy", string(strategy)),
		zap.Int("candidates", len(candidates)))

	corpus, err := c.store.AllPapers()
	if err != nil {
		return err
	}
	corpusByID := make(map[string]paper.Paper, len(corpus))
	for _, p := range corpus {
		corpusByID[p.ID] = p
	}

	outcomes := c.processCandidates(ctx, candidates, corpus)

	// Merge point: the BFS goroutine applies all results sequentially.
	for _, o := range outcomes {
		if o.cit == nil {
			summary.CitationsRejected++
			continue
		}
		summary.CitationsParsed++

		if o.res.Matched() {
			summary.CitationsMatched++
			err := c.connect(edge.Edge{
				SourceID:   item.p.ID,
				TargetID:   o.res.PaperID,
				RawText:    o.raw,
				MatchScore: o.res.Score,
				Method:     string(o.res.Method),
			}, summary)
			if err != nil {
				return err
			}
			if target, ok := corpusByID[o.res.PaperID]; ok {
				c.maybeEnqueue(target, item.depth, f, summary)
			}
			continue
		}

		if o.looked != nil {
			target, err := c.resolveOrCreate(*o.looked, summary)
			if err != nil {
				return err
			}
			err = c.connect(edge.Edge{
				SourceID: item.p.ID,
				TargetID: target.ID,
				RawText:  o.raw,
				Method:   "external-lookup",
			}, summary)
			if err != nil {
				return err
			}
			c.maybeEnqueue(*target, item.depth, f, summary)
			continue
		}

		// Unresolvable: recorded as free text only, never as an edge.
		summary.CitationsUnresolved++
		c.log.Info("unresolved citation",
			zap.String("source", item.p.ID),
			zap.String("text", o.raw))
	}
	return nil
}

// processCandidates runs the parse/match/lookup pipeline for every candidate
// on a bounded worker pool and joins before returning. Results keep input
// order; no worker shares mutable state with another.
func (c *Crawler) processCandidates(ctx context.Context, candidates []string, corpus []paper.Paper) []candidateOutcome {
	outcomes := make([]candidateOutcome, len(candidates))

	sem := make(chan struct{}, c.cfg.Concurrency)
	var wg sync.WaitGroup
	for i, raw := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, raw string) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = c.processCandidate(ctx, raw, corpus)
		}(i, raw)
	}
	wg.Wait()

	return outcomes
}

// processCandidate handles one candidate string: structured parse, validity
// gate, fuzzy match against the corpus, and external lookup as a last
// resort. Lookup failures degrade to "no match" after the client's own
// retries; they never abort the batch.
func (c *Crawler) processCandidate(ctx context.Context, raw string, corpus []paper.Paper) candidateOutcome {
	o := candidateOutcome{raw: raw}

	fm, err := c.parser.Parse(ctx, raw)
	if err != nil {
		c.log.Debug("structured parse failed", zap.String("text", raw), zap.Error(err))
		o.reject = citation.RejectMissingTitle
		return o
	}

	cit, reject := citation.Build(fm, raw)
	if cit == nil {
		o.reject = reject
		return o
	}
	o.cit = cit

	o.res = c.matcher.Match(cit, corpus)
	if o.res.Matched() {
		return o
	}

	var found *paper.Paper
	if cit.ArXivID != "" {
		found, err = c.lookup.LookupByID(ctx, "ARXIV:"+cit.ArXivID)
	} else {
		found, err = c.lookup.LookupByTitle(ctx, cit.Title)
	}
	if err != nil {
		c.log.Warn("external lookup failed", zap.String("title", cit.Title), zap.Error(err))
		return o
	}
	o.looked = found
	return o
}
