// Package cache persists compile results keyed by a content hash, so the
// CLI driver can skip re-checking a file whose source text has not
// changed. Backed by modernc.org/sqlite (a pure-Go sqlite driver, no cgo)
// through database/sql, the same way a small tool reaches for an embedded
// store when it doesn't want a server dependency.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tyro-lang/tyro/internal/diagnostics"
)

// Entry is what gets cached for one source file.
type Entry struct {
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
	Output      string                   `json:"output"`
}

// Cache wraps a sqlite-backed key/value store of content-hash -> Entry.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the sqlite database at path and ensures its schema
// exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS compiles (
		hash TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Hash computes the cache key for a file's source text.
func Hash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached entry for hash, if present.
func (c *Cache) Get(hash string) (Entry, bool, error) {
	var payload string
	err := c.db.QueryRow(`SELECT payload FROM compiles WHERE hash = ?`, hash).Scan(&payload)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: get %s: %w", hash, err)
	}
	var e Entry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Entry{}, false, fmt.Errorf("cache: decode %s: %w", hash, err)
	}
	return e, true, nil
}

// Put stores entry under hash, overwriting any previous value.
func (c *Cache) Put(hash string, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", hash, err)
	}
	_, err = c.db.Exec(`INSERT INTO compiles (hash, payload) VALUES (?, ?)
		ON CONFLICT(hash) DO UPDATE SET payload = excluded.payload`, hash, string(payload))
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", hash, err)
	}
	return nil
}
