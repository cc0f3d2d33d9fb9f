package crawl

import (
	"context"

	"go.uber.org/zap"

	"github.com/citegraph/citegraph/internal/edge"
	"github.com/citegraph/citegraph/internal/paper"
)

// expandForward queries the citation index for papers citing the current
// paper and records the reverse edges. A paper without any external
// identifier cannot be queried and is skipped for this direction.
func (c *Crawler) expandForward(ctx context.Context, item frontierItem, f *frontier, summary *Summary) error {
	id := externalID(item.p)
	if id == "" {
		c.log.Debug("no external id for forward crawl", zap.String("id", item.p.ID))
		return nil
	}

	citing, err := c.lookup.CitingPapers(ctx, id)
	if err != nil {
		// Retryable failures were already retried inside the client;
		// whatever remains fails this direction for this paper only.
		c.log.Warn("citation index query failed", zap.String("id", item.p.ID), zap.Error(err))
		return nil
	}

	for _, cp := range citing {
		source, err := c.resolveOrCreate(cp, summary)
		if err != nil {
			c.log.Warn("persisting citing paper", zap.String("title", cp.Title), zap.Error(err))
			summary.PapersFailed++
			continue
		}

		// The citing paper is the edge source: it cites the current paper.
		err = c.connect(edge.Edge{
			SourceID: source.ID,
			TargetID: item.p.ID,
			Method:   "citation-index",
		}, summary)
		if err != nil {
			return err
		}
		c.maybeEnqueue(*source, item.depth, f, summary)
	}
	return nil
}

// externalID picks the best identifier for citation-index queries.
func externalID(p paper.Paper) string {
	switch {
	case p.S2ID != "":
		return p.S2ID
	case p.DOI != "":
		return "DOI:" + p.DOI
	case p.ArXivID != "":
		return "ARXIV:" + p.ArXivID
	}
	return ""
}
