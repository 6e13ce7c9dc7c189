package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/crateview/internal/migrations"
	"github.com/studiowebux/crateview/internal/types"
)

// DefaultMaxEntries is how many distinct queries are kept
const DefaultMaxEntries = 500

type Manager struct {
	db         *sql.DB
	maxEntries int
	now        func() time.Time
}

// NewManager opens (creating if needed) the history database at dbPath.
// maxEntries <= 0 selects DefaultMaxEntries.
func NewManager(dbPath string, maxEntries int) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Manager{db: db, maxEntries: maxEntries, now: time.Now}, nil
}

// Record stores a submitted query, moving it to the front if it was
// searched before, and trims the oldest queries beyond the limit
func (m *Manager) Record(query string, sort types.SortKey) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history write: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO queries (query, sort, searched_at, search_count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(query) DO UPDATE SET
			sort = excluded.sort,
			searched_at = excluded.searched_at,
			search_count = search_count + 1
	`, query, string(sort), m.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save query: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM queries WHERE id NOT IN (
			SELECT id FROM queries ORDER BY searched_at DESC, id DESC LIMIT ?
		)
	`, m.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to limit entries, most recently searched first.
// limit <= 0 returns everything.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := m.db.Query(`
		SELECT id, query, sort, searched_at, search_count
		FROM queries
		ORDER BY searched_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var sort string
		var searchedAt int64
		if err := rows.Scan(&e.ID, &e.Query, &sort, &searchedAt, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Sort = types.SortKey(sort)
		e.SearchedAt = time.Unix(0, searchedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes one query
func (m *Manager) Delete(query string) error {
	if _, err := m.db.Exec(`DELETE FROM queries WHERE query = ?`, query); err != nil {
		return fmt.Errorf("failed to delete query: %w", err)
	}
	return nil
}

// Clear removes every stored query
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM queries`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// GetCount returns the number of stored queries
func (m *Manager) GetCount() (int, error) {
	var count int
	if err := m.db.QueryRow(`SELECT COUNT(*) FROM queries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
