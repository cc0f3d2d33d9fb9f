// Package pdf extracts per-page plain text and identifiers from PDF files.
package pdf

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// PageTexts extracts the text of every page as ordered lines. Pages whose
// text cannot be decoded are returned empty rather than aborting the
// document; reference extraction tolerates gaps.
func PageTexts(filePath string) ([][]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := make([][]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, strings.Split(text, "\n"))
	}
	return pages, nil
}

// ExtractDOI searches the first few pages of a PDF for a DOI pattern.
// Returns "" when none is found (not an error).
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// DOI is usually on the first page; search at most three.
	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// findDOI finds and cleans the first DOI in text.
func findDOI(text string) string {
	doi := doiPattern.FindString(text)
	// Trailing punctuation from sentence context is not part of the DOI.
	return strings.TrimRight(doi, ".,;:")
}
