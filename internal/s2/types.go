// Package s2 provides a rate-limited client for the Semantic Scholar
// Academic Graph API, used as the external paper lookup and forward
// citation index.
package s2

// S2Paper represents a paper from the Semantic Scholar API.
type S2Paper struct {
	PaperID     string      `json:"paperId"`
	ExternalIDs ExternalIDs `json:"externalIds,omitempty"`
	Title       string      `json:"title"`
	Abstract    string      `json:"abstract,omitempty"`
	Authors     []S2Author  `json:"authors,omitempty"`
	Year        int         `json:"year,omitempty"`
	Venue       string      `json:"venue,omitempty"`
	OpenAccess  *OpenAccess `json:"openAccessPdf,omitempty"`
}

// ExternalIDs contains external identifiers for a paper.
type ExternalIDs struct {
	DOI    string `json:"DOI,omitempty"`
	ArXiv  string `json:"ArXiv,omitempty"`
	PubMed string `json:"PubMed,omitempty"`
}

// S2Author represents an author from the Semantic Scholar API.
type S2Author struct {
	AuthorID string `json:"authorId,omitempty"`
	Name     string `json:"name"`
}

// OpenAccess carries the open-access PDF location when one exists.
type OpenAccess struct {
	URL string `json:"url,omitempty"`
}

// CitationResult is one entry from the citations endpoint.
type CitationResult struct {
	CitingPaper *S2Paper `json:"citingPaper,omitempty"`
}

// CitationsResponse is the paged response from the citations endpoint.
type CitationsResponse struct {
	Offset int              `json:"offset"`
	Next   int              `json:"next,omitempty"`
	Data   []CitationResult `json:"data"`
}

// MatchResponse is the response from the title-match search endpoint.
type MatchResponse struct {
	Data []S2Paper `json:"data"`
}

// PaperIdentifier represents a parsed paper identifier.
type PaperIdentifier struct {
	Type  string // DOI, ARXIV, PMID, S2
	Value string
}

// String returns the S2 API format for the identifier.
func (p PaperIdentifier) String() string {
	if p.Type == "S2" {
		return p.Value // Raw S2 ID doesn't need a prefix
	}
	return p.Type + ":" + p.Value
}
