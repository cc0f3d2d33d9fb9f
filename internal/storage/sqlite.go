// Package storage persists papers and citation edges in SQLite.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/citegraph/citegraph/internal/paper"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPaperFields is the standard field list for paper SELECT queries.
const selectPaperFields = `id, title, abstract, venue, pub_year, paper_type,
	doi, arxiv_id, s2_id, pdf_path, source_type, source_id, authors_json`

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			abstract TEXT,
			venue TEXT,
			pub_year INTEGER,
			paper_type TEXT,
			doi TEXT,
			arxiv_id TEXT,
			s2_id TEXT,
			pdf_path TEXT,
			source_type TEXT,
			source_id TEXT,
			authors_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_papers_doi ON papers(doi) WHERE doi IS NOT NULL AND doi != '';
		CREATE INDEX IF NOT EXISTS idx_papers_arxiv ON papers(arxiv_id) WHERE arxiv_id IS NOT NULL AND arxiv_id != '';
		CREATE INDEX IF NOT EXISTS idx_papers_s2 ON papers(s2_id) WHERE s2_id IS NOT NULL AND s2_id != '';

		CREATE TABLE IF NOT EXISTS edges (
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			raw_text TEXT,
			match_score REAL,
			match_method TEXT,
			created_at TEXT,
			PRIMARY KEY (source_id, target_id)
		);

		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
	`
	_, err := db.Exec(schema)
	return err
}

// CreatePaper inserts a paper. The paper must pass ValidateForCreate.
func (d *DB) CreatePaper(p paper.Paper) error {
	if err := p.ValidateForCreate(); err != nil {
		return err
	}

	authorsJSON, err := json.Marshal(p.Authors)
	if err != nil {
		return fmt.Errorf("encoding authors: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO papers (id, title, abstract, venue, pub_year, paper_type,
			doi, arxiv_id, s2_id, pdf_path, source_type, source_id, authors_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Title, p.Abstract, p.Venue, p.Year, string(p.Type),
		p.DOI, p.ArXivID, p.S2ID, p.PDFPath, p.Source.Type, p.Source.ID, string(authorsJSON))
	if err != nil {
		return fmt.Errorf("inserting paper: %w", err)
	}
	return nil
}

// GetPaper returns the paper with the given internal ID, or nil if absent.
func (d *DB) GetPaper(id string) (*paper.Paper, error) {
	row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE id = ?`, id)
	return scanPaper(row)
}

// FindExisting looks up a paper by its external identifiers, trying S2 ID,
// then DOI, then arXiv ID. Returns nil when none match. This is the
// deduplication path for papers discovered through lookups.
func (d *DB) FindExisting(p paper.Paper) (*paper.Paper, error) {
	lookups := []struct {
		column string
		value  string
	}{
		{"s2_id", p.S2ID},
		{"doi", p.DOI},
		{"arxiv_id", p.ArXivID},
	}

	for _, l := range lookups {
		if l.value == "" {
			continue
		}
		row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE `+l.column+` = ?`, l.value)
		found, err := scanPaper(row)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}

// AllPapers returns every stored paper. Used as the matcher's candidate corpus.
func (d *DB) AllPapers() ([]paper.Paper, error) {
	rows, err := d.db.Query(`SELECT ` + selectPaperFields + ` FROM papers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []paper.Paper
	for rows.Next() {
		p, err := scanPaperRow(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, *p)
	}
	return papers, rows.Err()
}

// CountPapers returns the number of stored papers.
func (d *DB) CountPapers() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&n)
	return n, err
}

// scanPaper scans a single-row query, mapping sql.ErrNoRows to nil.
func scanPaper(row *sql.Row) (*paper.Paper, error) {
	var p paper.Paper
	var paperType, authorsJSON string
	err := row.Scan(&p.ID, &p.Title, &p.Abstract, &p.Venue, &p.Year, &paperType,
		&p.DOI, &p.ArXivID, &p.S2ID, &p.PDFPath, &p.Source.Type, &p.Source.ID, &authorsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning paper: %w", err)
	}
	return finishPaper(&p, paperType, authorsJSON)
}

// scanPaperRow scans one row from a multi-row result set.
func scanPaperRow(rows *sql.Rows) (*paper.Paper, error) {
	var p paper.Paper
	var paperType, authorsJSON string
	err := rows.Scan(&p.ID, &p.Title, &p.Abstract, &p.Venue, &p.Year, &paperType,
		&p.DOI, &p.ArXivID, &p.S2ID, &p.PDFPath, &p.Source.Type, &p.Source.ID, &authorsJSON)
	if err != nil {
		return nil, fmt.Errorf("scanning paper: %w", err)
	}
	return finishPaper(&p, paperType, authorsJSON)
}

func finishPaper(p *paper.Paper, paperType, authorsJSON string) (*paper.Paper, error) {
	p.Type = paper.Type(paperType)
	if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
		return nil, fmt.Errorf("decoding authors: %w", err)
	}
	return p, nil
}
