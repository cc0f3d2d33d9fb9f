package s2

import (
	"context"

	"github.com/citegraph/citegraph/internal/paper"
)

// ToPaper converts an S2Paper to a domain Paper with a fresh internal ID.
func ToPaper(p S2Paper) paper.Paper {
	out := paper.Paper{
		ID:       paper.NewID(),
		Title:    p.Title,
		Abstract: p.Abstract,
		Venue:    p.Venue,
		Year:     p.Year,
		DOI:      NormalizeDOI(p.ExternalIDs.DOI),
		ArXivID:  p.ExternalIDs.ArXiv,
		S2ID:     p.PaperID,
		Source:   paper.ImportSource{Type: "s2", ID: p.PaperID},
	}
	for _, a := range p.Authors {
		if a.Name != "" {
			out.Authors = append(out.Authors, a.Name)
		}
	}
	return out
}

// LookupByTitle resolves a citation title to at most one candidate paper.
func (c *Client) LookupByTitle(ctx context.Context, title string) (*paper.Paper, error) {
	s2p, err := c.MatchTitle(ctx, title)
	if err != nil || s2p == nil {
		return nil, err
	}
	p := ToPaper(*s2p)
	return &p, nil
}

// LookupByID resolves an external identifier (DOI, arXiv ID, raw S2 ID) to
// at most one candidate paper.
func (c *Client) LookupByID(ctx context.Context, id string) (*paper.Paper, error) {
	s2p, err := c.Paper(ctx, id)
	if err != nil || s2p == nil {
		return nil, err
	}
	p := ToPaper(*s2p)
	return &p, nil
}

// CitingPapers returns papers that cite the paper with the given external ID.
func (c *Client) CitingPapers(ctx context.Context, id string) ([]paper.Paper, error) {
	s2Papers, err := c.Citations(ctx, id, DefaultCitationsLimit)
	if err != nil {
		return nil, err
	}
	papers := make([]paper.Paper, 0, len(s2Papers))
	for _, sp := range s2Papers {
		papers = append(papers, ToPaper(sp))
	}
	return papers, nil
}
