// Package refextract turns raw per-page PDF text into per-citation strings.
//
// The pipeline is: FilterRunningLines (drop repeated headers/footers) →
// LocateReferenceBlock (find the bibliography) → Segmenter (one string per
// citation). All stages are pure text transforms with no shared state, so
// documents can be processed in parallel.
package refextract

import "strings"

// FilterRunningLines removes running headers and footers: any line whose
// trimmed text appears on more than half of the document's pages. Returns the
// filtered text of each page, lines rejoined with newlines, in page order.
//
// Documents with two or fewer pages are never filtered; the threshold
// (pageCount/2) cannot be exceeded by design of the heuristic.
func FilterRunningLines(pages [][]string) []string {
	// Short documents have too few pages for repetition to be meaningful.
	if len(pages) <= 2 {
		joined := make([]string, 0, len(pages))
		for _, lines := range pages {
			joined = append(joined, strings.Join(lines, "\n"))
		}
		return joined
	}

	// Count each distinct line once per page.
	pageCounts := make(map[string]int)
	for _, lines := range pages {
		seen := make(map[string]bool)
		for _, line := range lines {
			key := strings.TrimSpace(line)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			pageCounts[key]++
		}
	}

	threshold := len(pages) / 2
	filtered := make([]string, 0, len(pages))
	for _, lines := range pages {
		var kept []string
		for _, line := range lines {
			if pageCounts[strings.TrimSpace(line)] > threshold {
				continue
			}
			kept = append(kept, line)
		}
		filtered = append(filtered, strings.Join(kept, "\n"))
	}
	return filtered
}
