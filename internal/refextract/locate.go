package refextract

import (
	"regexp"
	"strings"
)

// Origin records which locator heuristic produced a reference block.
type Origin string

const (
	// OriginReferencesHeader means an explicit "References" token was found.
	OriginReferencesHeader Origin = "references-header"
	// OriginBibliographyHeader means the fallback "Bibliography" token was found.
	OriginBibliographyHeader Origin = "bibliography-header"
)

// Block is the contiguous text judged to be the paper's bibliography.
type Block struct {
	Text   string
	Origin Origin
}

// section header patterns tried in order; the match is intentionally
// permissive (no word-boundary requirement) because OCR-degraded text often
// glues the header to adjacent punctuation. Case-insensitive regexes rather
// than a lowercased copy: ToLower is not length-preserving, so offsets found
// in a lowered copy are not valid slice indexes into the original page.
var sectionTokens = []struct {
	re     *regexp.Regexp
	origin Origin
}{
	{regexp.MustCompile(`(?i)references`), OriginReferencesHeader},
	{regexp.MustCompile(`(?i)bibliography`), OriginBibliographyHeader},
}

// LocateReferenceBlock scans filtered page texts for the start of the
// bibliography and returns everything after it. It takes the first
// case-insensitive occurrence of "References" anywhere in the document
// (falling back to "Bibliography"), slices the rest of that page after the
// token, and appends every subsequent page.
//
// Returns nil when no section header is found in the whole document. That is
// a normal outcome for papers without an extractable bibliography, not an
// error.
//
// Known weakness: a document that mentions "references" in its body before
// the real bibliography mis-locates the block at the first occurrence.
func LocateReferenceBlock(pages []string) *Block {
	for _, tok := range sectionTokens {
		for i, page := range pages {
			loc := tok.re.FindStringIndex(page)
			if loc == nil {
				continue
			}

			var b strings.Builder
			b.WriteString(page[loc[1]:])
			for _, rest := range pages[i+1:] {
				b.WriteString("\n")
				b.WriteString(rest)
			}
			return &Block{Text: b.String(), Origin: tok.origin}
		}
	}
	return nil
}
