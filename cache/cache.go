// Package cache suppresses re-fetching a keyword's feed within a TTL.
// Entries are keyed by the original, untranslated keyword; staleness is
// decided on read, there is no background sweep.
package cache

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/scipunch/newswatch/article"
)

//go:embed schema.sql
var schemaSQL string

// Cache stores per-keyword feed snapshots in sqlite.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Stats contains cache statistics.
type Stats struct {
	Entries     int
	OldestEntry time.Time
}

// New initializes the cache database at the given path.
func New(dbPath string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// NewFromDB wraps an already opened database connection.
func NewFromDB(db *sql.DB, ttl time.Duration) (*Cache, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the cached articles for a keyword. A stale entry is
// evicted and reported as a miss, as is any read or decode error.
func (c *Cache) Get(keyword string) ([]article.Article, bool) {
	var blob []byte
	var createdAt int64

	err := c.db.QueryRow(
		"SELECT articles, created_at FROM feed_cache WHERE keyword = ?",
		keyword,
	).Scan(&blob, &createdAt)

	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		slog.Warn("feed cache read error", "error", err, "keyword", keyword)
		return nil, false
	}

	if time.Since(time.Unix(0, createdAt)) > c.ttl {
		if _, err := c.db.Exec("DELETE FROM feed_cache WHERE keyword = ?", keyword); err != nil {
			slog.Warn("feed cache eviction error", "error", err, "keyword", keyword)
		}
		return nil, false
	}

	articles, err := DeserializeArticles(blob)
	if err != nil {
		slog.Warn("failed to decode cached feed", "error", err, "keyword", keyword)
		return nil, false
	}

	_, _ = c.db.Exec(
		"UPDATE feed_cache SET accessed_at = ? WHERE keyword = ?",
		time.Now().UnixNano(), keyword,
	)
	return articles, true
}

// Set stores a keyword's fetched articles, replacing any prior entry.
func (c *Cache) Set(keyword string, articles []article.Article) error {
	blob, err := SerializeArticles(articles)
	if err != nil {
		return fmt.Errorf("failed to encode feed for cache: %w", err)
	}

	now := time.Now().UnixNano()
	_, err = c.db.Exec(`
		INSERT OR REPLACE INTO feed_cache
		(keyword, articles, created_at, accessed_at)
		VALUES (?, ?, ?, ?)
	`, keyword, blob, now, now)
	if err != nil {
		return fmt.Errorf("failed to write feed cache: %w", err)
	}
	return nil
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM feed_cache"); err != nil {
		return fmt.Errorf("failed to clear feed cache: %w", err)
	}
	return nil
}

// CacheStats returns entry count and the oldest entry's creation time.
func (c *Cache) CacheStats() (Stats, error) {
	var stats Stats

	if err := c.db.QueryRow("SELECT COUNT(*) FROM feed_cache").Scan(&stats.Entries); err != nil {
		return stats, err
	}

	var oldest sql.NullInt64
	err := c.db.QueryRow("SELECT MIN(created_at) FROM feed_cache").Scan(&oldest)
	if err != nil && err != sql.ErrNoRows {
		return stats, err
	}
	if oldest.Valid && oldest.Int64 > 0 {
		stats.OldestEntry = time.Unix(0, oldest.Int64)
	}
	return stats, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
