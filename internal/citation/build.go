package citation

import (
	"strings"

	"github.com/citegraph/citegraph/internal/paper"
)

// venue keywords that mark conference publications regardless of the
// parser's type tag.
var conferenceKeywords = []string{"conference", "workshop", "symposium", "proceedings"}

// Build assembles a Citation from a parsed field map, normalizing authors,
// year, type, and title. It returns nil plus a reason when the map fails the
// validity gate: empty title, unknown year, and empty author list are each
// independently sufficient to reject. A partially-filled Citation is never
// returned.
func Build(fm *FieldMap, rawText string) (*Citation, RejectReason) {
	if fm == nil {
		return nil, RejectMissingTitle
	}

	title := CleanTitle(fm.Title)
	if title == "" {
		return nil, RejectMissingTitle
	}

	year := ExtractYear(fm.Issued)
	if year == -1 {
		return nil, RejectMissingYear
	}

	authors := assembleAuthors(fm.Authors)
	if len(authors) == 0 {
		return nil, RejectMissingAuthors
	}

	c := &Citation{
		Title:   title,
		Authors: authors,
		Year:    year,
		Venue:   fm.ContainerTitle,
		Pages:   fm.Page,
		Note:    fm.Note,
		RawText: rawText,
	}
	c.Type = classify(fm)
	if c.Type == paper.ArxivPaper {
		c.ArXivID = arxivIDFromNote(fm.Note)
	}
	return c, RejectNone
}

// assembleAuthors flattens parsed name entries to display strings. It
// prefers given+family, falls back to the literal then others fields, and
// skips entries with no usable name rather than emitting empty strings.
func assembleAuthors(names []Name) []string {
	var authors []string
	for _, n := range names {
		switch {
		case n.Family != "" && n.Given != "":
			authors = append(authors, n.Given+" "+n.Family)
		case n.Family != "":
			authors = append(authors, n.Family)
		case n.Literal != "":
			authors = append(authors, n.Literal)
		case n.Others != "":
			authors = append(authors, n.Others)
		}
	}
	return authors
}

// ExtractYear pulls a 4-digit year out of the parser's date field. The field
// may hold several strings; only the first is used. The first sub-token
// (split on "-", ".", ",") is stripped to digits and the first four digits
// of its first digit run become the year. Returns -1 when no digits remain.
func ExtractYear(issued []string) int {
	if len(issued) == 0 {
		return -1
	}

	token := issued[0]
	if idx := strings.IndexAny(token, "-.,"); idx >= 0 {
		token = token[:idx]
	}

	digits := ""
	for _, r := range token {
		if r >= '0' && r <= '9' {
			digits += string(r)
		} else if digits != "" {
			break
		}
	}
	if digits == "" {
		return -1
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}

	year := 0
	for _, r := range digits {
		year = year*10 + int(r-'0')
	}
	return year
}

// classify maps the parser's CSL type tag plus venue/note hints to a paper
// type. The arXiv note check overrides article-journal because structured
// parsers commonly tag arXiv preprints as journal articles with an
// "arXiv:NNNN.NNNNN" note.
func classify(fm *FieldMap) paper.Type {
	venue := strings.ToLower(fm.ContainerTitle)
	for _, kw := range conferenceKeywords {
		if strings.Contains(venue, kw) {
			return paper.ConferencePaper
		}
	}

	switch fm.Type {
	case "paper-conference":
		return paper.ConferencePaper
	case "article-journal":
		if strings.Contains(strings.ToLower(fm.Note), "arxiv") {
			return paper.ArxivPaper
		}
		return paper.JournalPaper
	case "book":
		return paper.Book
	case "chapter":
		return paper.BookChapter
	case "report":
		return paper.Report
	}
	return paper.Unknown
}

// arxivIDFromNote extracts an arXiv identifier from a free-text note like
// "arXiv:2106.15928v2": take everything after the first ":", then cut at the
// version marker "v".
func arxivIDFromNote(note string) string {
	_, after, found := strings.Cut(note, ":")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(strings.TrimSpace(after), "v")
	return id
}

// CleanTitle strips a trailing bracketed annotation ("Title [Online]" →
// "Title") and the leading "- " artifact left by hyphen-wrapped lines.
func CleanTitle(title string) string {
	if idx := strings.Index(title, "["); idx >= 0 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)
	title = strings.TrimPrefix(title, "- ")
	return strings.TrimSpace(title)
}
