// Package citation builds validated Citation records from the loosely-typed
// field maps returned by an external structured-citation parser.
package citation

import (
	"context"

	"github.com/citegraph/citegraph/internal/paper"
)

// Name is one author entry in CSL shape: structured parsers return
// family/given pairs when they can, a literal string otherwise, and an
// "others" marker for trailing "et al."-style entries.
type Name struct {
	Family  string `json:"family,omitempty"`
	Given   string `json:"given,omitempty"`
	Literal string `json:"literal,omitempty"`
	Others  string `json:"others,omitempty"`
}

// FieldMap is the loosely-typed output of the external bibliographic parser
// for a single citation candidate. Field names follow the CSL schema.
type FieldMap struct {
	Title          string   `json:"title"`
	Authors        []Name   `json:"author,omitempty"`
	ContainerTitle string   `json:"container-title,omitempty"`
	Type           string   `json:"type,omitempty"` // paper-conference, article-journal, book, chapter, report
	Issued         []string `json:"issued,omitempty"`
	Page           string   `json:"page,omitempty"`
	Note           string   `json:"note,omitempty"`
}

// Parser is the external structured-citation parsing capability. A nil
// result with nil error means the text could not be parsed at all.
type Parser interface {
	Parse(ctx context.Context, text string) (*FieldMap, error)
}

// Citation is a validated, structured bibliographic record parsed from one
// candidate string. Instances are only ever produced by Build, which
// enforces the title/year/author gate; a Citation in the wild always has a
// non-empty title, a known year, and at least one author.
type Citation struct {
	Title   string     `json:"title"`
	Authors []string   `json:"authors"`
	Year    int        `json:"year"` // -1 means unknown (never observed post-gate)
	Venue   string     `json:"venue,omitempty"`
	Pages   string     `json:"pages,omitempty"`
	Type    paper.Type `json:"type"`
	ArXivID string     `json:"arxiv_id,omitempty"`
	Note    string     `json:"note,omitempty"`
	RawText string     `json:"raw_text,omitempty"`
}

// RejectReason says why a field map failed the validity gate.
type RejectReason string

const (
	RejectNone           RejectReason = ""
	RejectMissingTitle   RejectReason = "missing-title"
	RejectMissingYear    RejectReason = "missing-year"
	RejectMissingAuthors RejectReason = "missing-authors"
)
