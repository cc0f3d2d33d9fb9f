// Package match decides whether a citation and a corpus paper denote the
// same work, using normalized Levenshtein similarity over titles.
package match

import (
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/citegraph/citegraph/internal/citation"
	"github.com/citegraph/citegraph/internal/paper"
	"github.com/citegraph/citegraph/internal/textnorm"
)

// DefaultThreshold is the minimum similarity score for a positive match.
// The same constant is used for live matching and graph building; call sites
// must not vary it independently.
const DefaultThreshold = 85.0

// yearBonus is added when citation and candidate years agree.
const yearBonus = 10.0

// Method says how a match was established.
type Method string

const (
	MethodExact          Method = "exact"
	MethodFuzzyTitle     Method = "fuzzy-title"
	MethodFuzzyTitleYear Method = "fuzzy-title-year-boosted"
)

// Result is the outcome of matching one citation against a candidate set.
// PaperID is empty when the best score fell below the threshold; Score and
// Method still describe the best candidate seen.
type Result struct {
	PaperID string  `json:"matched_paper_id,omitempty"`
	Score   float64 `json:"score"` // 0-100
	Method  Method  `json:"method,omitempty"`
}

// Matched reports whether the result is a positive match.
func (r Result) Matched() bool {
	return r.PaperID != ""
}

// Matcher scores citations against candidate papers. It holds only
// immutable configuration, so a single Matcher is safe for concurrent use.
type Matcher struct {
	threshold float64
}

// New creates a Matcher. A non-positive threshold selects DefaultThreshold.
func New(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// NormalizeTitle prepares a title for comparison: NFKD decomposition,
// ASCII-only folding, lowercase, trim.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(strings.ToLower(textnorm.FoldASCII(title)))
}

// Similarity returns the Levenshtein similarity ratio (0-100) between two
// already-normalized strings.
func Similarity(a, b string) float64 {
	if a == b {
		return 100
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(maxLen))
}

// Best compares a title and year hint against every candidate and returns
// the highest-scoring result. Matching candidate years earn a flat bonus,
// capped at 100. Ties break first-seen-wins: a later candidate must strictly
// beat the current best. A best score below the threshold is reported as no
// match (empty PaperID) with the score retained for diagnostics.
//
// A year hint of 0 or -1 disables the year bonus.
func (m *Matcher) Best(title string, year int, candidates []paper.Paper) Result {
	normTitle := NormalizeTitle(title)

	var best Result
	for _, cand := range candidates {
		normCand := NormalizeTitle(cand.Title)
		score := Similarity(normTitle, normCand)

		method := MethodFuzzyTitle
		if normTitle == normCand {
			method = MethodExact
		}
		if year > 0 && year == cand.Year {
			score += yearBonus
			if score > 100 {
				score = 100
			}
			if method != MethodExact {
				method = MethodFuzzyTitleYear
			}
		}

		if score > best.Score {
			best = Result{PaperID: cand.ID, Score: score, Method: method}
		}
	}

	if best.Score < m.threshold {
		best.PaperID = ""
	}
	return best
}

// Match scores a parsed citation against the candidate set.
func (m *Matcher) Match(c *citation.Citation, candidates []paper.Paper) Result {
	return m.Best(c.Title, c.Year, candidates)
}

// MatchAll runs Match for many citations concurrently. Each citation's
// comparisons complete before its decision is taken, and no scoring state is
// shared between citations. Results are returned in input order.
func (m *Matcher) MatchAll(citations []*citation.Citation, candidates []paper.Paper) []Result {
	results := make([]Result, len(citations))

	var wg sync.WaitGroup
	for i, c := range citations {
		wg.Add(1)
		go func(i int, c *citation.Citation) {
			defer wg.Done()
			results[i] = m.Match(c, candidates)
		}(i, c)
	}
	wg.Wait()

	return results
}
