package crawl

import (
	"strings"

	"github.com/citegraph/citegraph/internal/paper"
)

// passesGate applies the optional keyword policy: a discovered paper is
// only expanded further when enough mandatory keywords appear in its title
// and enough additional keywords appear in its abstract. Papers failing the
// gate remain recorded in the store; they just stop the crawl from growing
// into unrelated literature. Empty keyword lists disable the gate.
func (c *Crawler) passesGate(p paper.Paper) bool {
	if !keywordFraction(p.Title, c.cfg.MandatoryKeywords, c.cfg.MandatoryFraction) {
		return false
	}
	return keywordFraction(p.Abstract, c.cfg.AdditionalKeywords, c.cfg.AdditionalFraction)
}

// keywordFraction reports whether at least the given fraction of keywords
// occur in text, case-insensitively. An empty keyword list always passes.
func keywordFraction(text string, keywords []string, fraction float64) bool {
	if len(keywords) == 0 {
		return true
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits++
		}
	}
	return float64(hits)/float64(len(keywords)) >= fraction
}
