package storage

import (
	"fmt"
	"time"

	"dirgrip/internal/domain"
)

// VisitLog records every working-directory change with a timestamp.
type VisitLog struct {
	db *DB
}

// NewVisitLog creates a visit log on top of an open database.
func NewVisitLog(db *DB) *VisitLog {
	return &VisitLog{db: db}
}

// Add records a directory visit. A visit to the same path as the most recent
// entry only refreshes its timestamp.
func (vl *VisitLog) Add(path string) error {
	if path == "" {
		return nil
	}

	var lastID int64
	var lastPath string
	err := vl.db.conn.QueryRow(
		`SELECT id, path FROM visits ORDER BY visited_at DESC, id DESC LIMIT 1`,
	).Scan(&lastID, &lastPath)
	if err == nil && lastPath == path {
		_, err = vl.db.conn.Exec(
			`UPDATE visits SET visited_at = datetime('now') WHERE id = ?`, lastID)
		if err != nil {
			return fmt.Errorf("updating visit: %w", err)
		}
		return nil
	}

	if _, err := vl.db.conn.Exec(`INSERT INTO visits (path) VALUES (?)`, path); err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Recent returns up to limit visits, newest first.
func (vl *VisitLog) Recent(limit int) ([]domain.Visit, error) {
	rows, err := vl.db.conn.Query(
		`SELECT path, visited_at FROM visits ORDER BY visited_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visits: %w", err)
	}
	defer rows.Close()
	return scanVisits(rows)
}

// Search finds visits whose path contains the query, newest first.
func (vl *VisitLog) Search(query string, limit int) ([]domain.Visit, error) {
	rows, err := vl.db.conn.Query(
		`SELECT path, visited_at FROM visits
		 WHERE path LIKE '%' || ? || '%'
		 ORDER BY visited_at DESC, id DESC LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching visits: %w", err)
	}
	defer rows.Close()
	return scanVisits(rows)
}

// Count returns the number of recorded visits.
func (vl *VisitLog) Count() (int, error) {
	var n int
	if err := vl.db.conn.QueryRow(`SELECT COUNT(*) FROM visits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting visits: %w", err)
	}
	return n, nil
}

// Clear removes all recorded visits.
func (vl *VisitLog) Clear() error {
	if _, err := vl.db.conn.Exec(`DELETE FROM visits`); err != nil {
		return fmt.Errorf("clearing visits: %w", err)
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanVisits(rows rowScanner) ([]domain.Visit, error) {
	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		var visitedAt string
		if err := rows.Scan(&v.Path, &visitedAt); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		if ts, err := time.Parse("2006-01-02 15:04:05", visitedAt); err == nil {
			v.VisitedAt = ts
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
