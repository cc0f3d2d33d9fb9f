package s2

import (
	"regexp"
	"strings"
)

// Identifier prefixes accepted by the Semantic Scholar API.
var identifierPrefixes = []string{
	"DOI:",
	"ARXIV:",
	"PMID:",
	"CorpusId:",
	"URL:",
}

// s2IDPattern matches a 40-character hex string (raw S2 paper ID).
var s2IDPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// arxivIDPattern matches a bare modern arXiv identifier like 2106.15928.
var arxivIDPattern = regexp.MustCompile(`^\d{4}\.\d{4,5}$`)

// ParsePaperID parses a paper identifier string into a PaperIdentifier.
// Supports:
//   - DOI:10.1038/nature12373
//   - ARXIV:2106.15928 (also bare 2106.15928)
//   - PMID:19872477
//   - Raw 40-character S2 paper ID
func ParsePaperID(id string) PaperIdentifier {
	id = strings.TrimSpace(id)

	for _, prefix := range identifierPrefixes {
		if strings.HasPrefix(strings.ToUpper(id), strings.ToUpper(prefix)) {
			return PaperIdentifier{
				Type:  strings.TrimSuffix(prefix, ":"),
				Value: id[len(prefix):],
			}
		}
	}

	if s2IDPattern.MatchString(id) {
		return PaperIdentifier{Type: "S2", Value: id}
	}

	if arxivIDPattern.MatchString(id) {
		return PaperIdentifier{Type: "ARXIV", Value: id}
	}

	if strings.HasPrefix(id, "10.") {
		return PaperIdentifier{Type: "DOI", Value: id}
	}

	return PaperIdentifier{Type: "S2", Value: id}
}

// NormalizeDOI normalizes a DOI for comparison: strips URL and "DOI:"
// prefixes and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	return strings.ToLower(doi)
}
