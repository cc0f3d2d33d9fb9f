package refextract

import (
	"regexp"
	"strings"

	"github.com/citegraph/citegraph/internal/textnorm"
)

// Strategy identifies which segmentation heuristic produced the candidates.
type Strategy string

const (
	StrategyBracket    Strategy = "bracket"     // [1] Author...
	StrategyNumbered   Strategy = "numbered"    // 1. Author...
	StrategyAuthorYear Strategy = "author-year" // Smith, J. (2020). ...
	StrategyNone       Strategy = "none"
)

// DefaultColumnMinWidth is the line width below which a line inside a
// gutter-bearing block is treated as a right-column fragment.
const DefaultColumnMinWidth = 45

var (
	bracketHeadRe  = regexp.MustCompile(`(?m)^\s*\[`)
	numberedHeadRe = regexp.MustCompile(`(?m)^\s*\d+\.\s`)
	leadingIndexRe = regexp.MustCompile(`^\s*\d+\.\s*`)

	// gutterRe matches a run of spaces wide enough to be a column gutter
	// extracted as a single text stream from a two-column layout.
	gutterRe = regexp.MustCompile(` {4,}`)

	// authorListPat matches one or more "Surname, I." groups joined by
	// commas, "and", or "&".
	authorListPat = `[A-Z][\w'-]+,\s*(?:[A-Z]\.[\s-]*)+(?:(?:,\s*|,?\s+and\s+|,?\s*&\s*)[A-Z][\w'-]+,\s*(?:[A-Z]\.[\s-]*)+)*`

	// apaHeadRe anchors a citation at an author list followed directly by a
	// parenthesized or bare four-digit year and a period (APA style).
	apaHeadRe = regexp.MustCompile(`(?m)^` + authorListPat + `\(?\d{4}\)?\.`)

	// dotHeadRe anchors a citation at a bare author list ending in a period,
	// with the year somewhere later in the entry (Nature style).
	dotHeadRe = regexp.MustCompile(`(?m)^` + authorListPat)
)

// SegmenterConfig carries the tunable knobs of the segmenter. An explicit
// struct rather than package-level state so concurrent documents can use
// different settings.
type SegmenterConfig struct {
	// ColumnMinWidth is the short-line threshold for two-column repair.
	// Zero means DefaultColumnMinWidth.
	ColumnMinWidth int
}

// Segmenter splits a reference block into one cleaned string per citation.
type Segmenter struct {
	cfg SegmenterConfig
}

// NewSegmenter creates a Segmenter with the given configuration.
func NewSegmenter(cfg SegmenterConfig) *Segmenter {
	if cfg.ColumnMinWidth <= 0 {
		cfg.ColumnMinWidth = DefaultColumnMinWidth
	}
	return &Segmenter{cfg: cfg}
}

// strategyDef pairs a precondition probe with a splitting function. The
// strategies are tried in fixed priority order; the first whose precondition
// matches wins, and no later strategy is consulted even if the winner yields
// zero candidates.
type strategyDef struct {
	name    Strategy
	applies func(block string) bool
	split   func(s *Segmenter, block string) []string
}

var strategies = []strategyDef{
	{StrategyBracket, func(b string) bool { return bracketHeadRe.MatchString(b) }, (*Segmenter).splitBracket},
	{StrategyNumbered, func(b string) bool { return numberedHeadRe.MatchString(b) }, (*Segmenter).splitNumbered},
	{StrategyAuthorYear, func(string) bool { return true }, (*Segmenter).splitAuthorYear},
}

// Segment splits a reference block into citation candidates in document
// order. Returns the candidates and the strategy that produced them. An
// empty result is a legitimate outcome (the block matched no known layout),
// not an error.
func (s *Segmenter) Segment(block string) ([]string, Strategy) {
	for _, st := range strategies {
		if !st.applies(block) {
			continue
		}
		var out []string
		for _, raw := range st.split(s, block) {
			if c := textnorm.Clean(raw); c != "" {
				out = append(out, c)
			}
		}
		return out, st.name
	}
	return nil, StrategyNone
}

// splitBracket handles "[1] Author..." blocks. A two-column repair pass runs
// first, then the block is cut at every line-leading "[".
func (s *Segmenter) splitBracket(block string) []string {
	block = s.repairColumns(block)
	return cutAt(block, bracketHeadRe.FindAllStringIndex(block, -1))
}

// splitNumbered handles "1. Author..." blocks: each line-leading "N." starts
// a new citation, and the leading index is stripped from every chunk.
func (s *Segmenter) splitNumbered(block string) []string {
	chunks := cutAt(block, numberedHeadRe.FindAllStringIndex(block, -1))
	for i, c := range chunks {
		chunks[i] = leadingIndexRe.ReplaceAllString(c, "")
	}
	return chunks
}

// splitAuthorYear handles unnumbered reference lists. Two sub-variants are
// tried in order: year-directly-after-authors (APA), then a bare author list
// with the year later in the entry. Whichever first produces at least one
// match on the block is used; if neither matches, segmentation yields nothing.
func (s *Segmenter) splitAuthorYear(block string) []string {
	for _, re := range []*regexp.Regexp{apaHeadRe, dotHeadRe} {
		if locs := re.FindAllStringIndex(block, -1); len(locs) > 0 {
			return cutAt(block, locs)
		}
	}
	return nil
}

// cutAt slices block at the start offset of each match location. Text before
// the first boundary is discarded.
func cutAt(block string, locs [][]int) []string {
	if len(locs) == 0 {
		return nil
	}
	var chunks []string
	for i, loc := range locs {
		end := len(block)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunks = append(chunks, block[loc[0]:end])
	}
	return chunks
}

// repairColumns reconstructs reading order for reference pages extracted from
// a two-column layout as a single text stream. Lines containing a gutter (a
// run of four or more spaces) are split into left and right fragments; short
// gutterless lines that follow are appended to the right column. The left
// column is emitted first, then the right.
func (s *Segmenter) repairColumns(block string) string {
	if !gutterRe.MatchString(block) {
		return block
	}

	var left, right []string
	for _, line := range strings.Split(block, "\n") {
		if loc := gutterRe.FindStringIndex(line); loc != nil && strings.TrimSpace(line[:loc[0]]) != "" {
			left = append(left, strings.TrimSpace(line[:loc[0]]))
			right = append(right, strings.TrimSpace(line[loc[1]:]))
			continue
		}
		if len(line) < s.cfg.ColumnMinWidth && len(right) > 0 {
			right = append(right, strings.TrimSpace(line))
			continue
		}
		left = append(left, line)
	}
	return strings.Join(append(left, right...), "\n")
}
