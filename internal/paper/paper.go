// Package paper defines the core domain types for papers in the citation graph.
package paper

import (
	"errors"

	"github.com/google/uuid"
)

// Type classifies the publication venue of a paper or citation.
type Type string

const (
	ConferencePaper Type = "conference"
	JournalPaper    Type = "journal"
	ArxivPaper      Type = "arxiv"
	Book            Type = "book"
	BookChapter     Type = "chapter"
	Report          Type = "report"
	Unknown         Type = "unknown"
)

// Paper represents one node in the citation graph.
type Paper struct {
	// Identity
	ID string `json:"id"` // Internal stable identifier

	// Metadata
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Abstract string   `json:"abstract,omitempty"`
	Venue    string   `json:"venue,omitempty"`
	Year     int      `json:"year"` // 0 if unknown
	Type     Type     `json:"type,omitempty"`

	// External identifiers (populated from lookup services)
	DOI     string `json:"doi,omitempty"`
	ArXivID string `json:"arxiv_id,omitempty"`
	S2ID    string `json:"s2_id,omitempty"`

	// Local PDF path, if one has been retrieved
	PDFPath string `json:"pdf_path,omitempty"`

	// Import tracking
	Source ImportSource `json:"source"`
}

// ImportSource tracks where a paper record came from.
type ImportSource struct {
	Type string `json:"type"` // seed, s2, reference, manual
	ID   string `json:"id"`   // Original ID from the source system
}

// Validation errors.
var (
	ErrEmptyID    = errors.New("id is required")
	ErrEmptyTitle = errors.New("title is required")
)

// NewID returns a fresh internal paper identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidateForCreate validates a paper for persistence.
func (p *Paper) ValidateForCreate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if p.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// HasPDF reports whether a local PDF is available for reference extraction.
func (p *Paper) HasPDF() bool {
	return p.PDFPath != ""
}
