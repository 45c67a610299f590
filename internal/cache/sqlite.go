package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS discovery_cache (
	key       TEXT PRIMARY KEY,
	payload   BLOB NOT NULL,
	cached_at TEXT NOT NULL
)`

// SQLiteStore persists cache entries in a single-table SQLite database, so
// memoized discovery results survive process restarts. No cross-process
// locking beyond what SQLite itself provides; concurrent runs may race on
// population, which is harmless.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the cache database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(key string) ([]byte, time.Time, bool, error) {
	var payload []byte
	var cachedAt string

	row := s.db.QueryRow("SELECT payload, cached_at FROM discovery_cache WHERE key = ?", key)
	if err := row.Scan(&payload, &cachedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, fmt.Errorf("reading cache entry: %w", err)
	}

	t, err := time.Parse(time.RFC3339, cachedAt)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("parsing cache timestamp: %w", err)
	}

	return payload, t, true, nil
}

// Set implements Store.
func (s *SQLiteStore) Set(key string, payload []byte, cachedAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO discovery_cache (key, payload, cached_at) VALUES (?, ?, ?)",
		key, payload, cachedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
