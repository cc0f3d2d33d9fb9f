// Package edge defines the directed citation edges of the graph.
package edge

import (
	"errors"
	"time"
)

// Edge represents one directed citation: the source paper cites the target paper.
// Identity is the (SourceID, TargetID) ordered pair; at most one edge exists per pair.
type Edge struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`

	// Provenance of the match that produced this edge.
	RawText    string  `json:"raw_text,omitempty"`    // Citation string as segmented from the PDF
	MatchScore float64 `json:"match_score,omitempty"` // 0-100 similarity, 0 if not fuzzy-matched
	Method     string  `json:"match_method,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// Validation errors.
var (
	ErrEmptySourceID = errors.New("source_id is required")
	ErrEmptyTargetID = errors.New("target_id is required")
	ErrSelfEdge      = errors.New("source_id and target_id cannot be the same")
)

// ValidateForCreate validates an edge for creation.
// Returns an error if an endpoint is missing or the edge would be a self-edge.
func (e *Edge) ValidateForCreate() error {
	if e.SourceID == "" {
		return ErrEmptySourceID
	}
	if e.TargetID == "" {
		return ErrEmptyTargetID
	}
	if e.SourceID == e.TargetID {
		return ErrSelfEdge
	}
	return nil
}

// SetCreatedAt sets the CreatedAt timestamp to the current time if not already set.
func (e *Edge) SetCreatedAt() {
	if e.CreatedAt == "" {
		e.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
}

// Key returns the unique identity pair for this edge.
func (e *Edge) Key() Key {
	return Key{SourceID: e.SourceID, TargetID: e.TargetID}
}

// Key represents the unique identity of an edge.
type Key struct {
	SourceID string
	TargetID string
}

// FindDuplicates finds ordered pairs that appear more than once in the list.
// Returns a map of Key to count for keys that appear more than once.
func FindDuplicates(edges []Edge) map[Key]int {
	counts := make(map[Key]int)
	for _, e := range edges {
		counts[e.Key()]++
	}

	duplicates := make(map[Key]int)
	for key, count := range counts {
		if count > 1 {
			duplicates[key] = count
		}
	}
	return duplicates
}
