package storage

import (
	"database/sql"
	"fmt"

	"github.com/citegraph/citegraph/internal/edge"
)

// InsertEdge inserts a citation edge. The composite primary key makes the
// operation idempotent: re-inserting an existing (source, target) pair is a
// no-op, preserving the original match provenance.
func (d *DB) InsertEdge(e edge.Edge) error {
	if err := e.ValidateForCreate(); err != nil {
		return err
	}
	e.SetCreatedAt()

	_, err := d.db.Exec(`
		INSERT OR IGNORE INTO edges (source_id, target_id, raw_text, match_score, match_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.SourceID, e.TargetID, e.RawText, e.MatchScore, e.Method, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting edge: %w", err)
	}
	return nil
}

// HasEdge reports whether an edge exists for the ordered pair.
func (d *DB) HasEdge(sourceID, targetID string) (bool, error) {
	var n int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM edges WHERE source_id = ? AND target_id = ?
	`, sourceID, targetID).Scan(&n)
	return n > 0, err
}

// GetEdgesBySource returns all edges where the given paper is the source.
func (d *DB) GetEdgesBySource(sourceID string) ([]edge.Edge, error) {
	rows, err := d.db.Query(`
		SELECT source_id, target_id, raw_text, match_score, match_method, created_at
		FROM edges
		WHERE source_id = ?
		ORDER BY target_id
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying edges by source: %w", err)
	}
	defer rows.Close()

	return scanEdges(rows)
}

// AllEdges returns every edge in the database.
func (d *DB) AllEdges() ([]edge.Edge, error) {
	rows, err := d.db.Query(`
		SELECT source_id, target_id, raw_text, match_score, match_method, created_at
		FROM edges
		ORDER BY source_id, target_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying all edges: %w", err)
	}
	defer rows.Close()

	return scanEdges(rows)
}

// CountEdges returns the number of stored edges.
func (d *DB) CountEdges() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&n)
	return n, err
}

func scanEdges(rows *sql.Rows) ([]edge.Edge, error) {
	var edges []edge.Edge
	for rows.Next() {
		var e edge.Edge
		if err := rows.Scan(&e.SourceID, &e.TargetID, &e.RawText, &e.MatchScore, &e.Method, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
