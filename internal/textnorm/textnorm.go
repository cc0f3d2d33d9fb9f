// Package textnorm provides text normalization shared by the reference
// extraction pipeline and the fuzzy matcher.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// hyphenBreakRe matches a word split across a line break with a hyphen,
	// e.g. "trans-\nformer" as extracted from two-column PDFs.
	hyphenBreakRe = regexp.MustCompile(`(\w+)-\s+(\w+)`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// dashReplacer maps typographic dash variants to a plain hyphen.
var dashReplacer = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

// RepairHyphenation rejoins words that were hyphenated across line breaks.
func RepairHyphenation(s string) string {
	return hyphenBreakRe.ReplaceAllString(s, "$1$2")
}

// CollapseWhitespace replaces runs of whitespace (including newlines) with a
// single space and trims the result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// NormalizeDashes maps en/em dashes and other dash variants to "-".
func NormalizeDashes(s string) string {
	return dashReplacer.Replace(s)
}

// Clean applies the standard candidate cleanup: dash normalization,
// hyphenation repair, whitespace collapse, trim.
func Clean(s string) string {
	return CollapseWhitespace(RepairHyphenation(NormalizeDashes(s)))
}

// FoldASCII decomposes s with NFKD and drops every resulting code point
// outside the ASCII range. "Schröder" folds to "Schroder"; characters with
// no ASCII decomposition are removed entirely.
func FoldASCII(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
