// Package cache implements the identifier and cover caches the host manager
// normally provides, backed by a SQLite database, plus a keyed TTL cache for
// raw subject responses.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

// DefaultTTL is the default time-to-live for cached entries (30 days).
const DefaultTTL = 720 * time.Hour

// DB manages the SQLite database connection for caching.
type DB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// Open opens (or creates) the cache database at path and initializes the
// cache tables.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	c := &DB{db: db, path: path}
	for _, schema := range allSchemas {
		if _, err := c.db.Exec(schema); err != nil {
			closeErr := c.db.Close()
			return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
		}
	}
	return c, nil
}

// OpenFromConfig opens the cache database at the viper-configured path.
func OpenFromConfig() (*DB, error) {
	path := viper.GetString("cache.dbfile")
	if path == "" {
		path = "./cache.db"
	}
	return Open(path)
}

// Close closes the database connection.
func (c *DB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// TTL returns the configured cache time-to-live.
func TTL() time.Duration {
	raw := viper.GetString("cache.ttl")
	if raw == "" {
		return DefaultTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid cache TTL, using default", "ttl", raw, "error", err)
		return DefaultTTL
	}
	return ttl
}

// Get retrieves a cached value from the specified table. Returns the value,
// whether it was present and unexpired, and any error.
func (c *DB) Get(tableName, key string, ttl time.Duration) (string, bool, error) {
	if err := validateTableName(tableName); err != nil {
		return "", false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	query := fmt.Sprintf(`
		SELECT data, cached_at
		FROM %s
		WHERE cache_key = ?
	`, tableName)

	var data string
	var cachedAt time.Time
	err := c.db.QueryRow(query, key).Scan(&data, &cachedAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cache: %w", err)
	}

	age := time.Now().UTC().Sub(cachedAt)
	if age > ttl {
		slog.Debug("Cache expired", "table", tableName, "key", key, "age", age)
		return "", false, nil
	}

	return data, true, nil
}

// Set stores a value in the cache.
func (c *DB) Set(tableName, key, data string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (cache_key, data, cached_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, tableName)

	_, err := c.db.Exec(query, key, data)
	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// ClearAll removes all cache entries from the specified table.
func (c *DB) ClearAll(tableName string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := fmt.Sprintf("DELETE FROM %s", tableName)
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	slog.Info("Cache cleared", "table", tableName)
	return nil
}

// ClearExpired removes expired cache entries from the specified table.
func (c *DB) ClearExpired(tableName string, ttl time.Duration) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().UTC().Add(-ttl)
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE cached_at < ?
	`, tableName)

	result, err := c.db.Exec(query, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clear expired cache: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		slog.Info("Cleared expired cache entries", "table", tableName, "count", rows)
	}

	return nil
}

// validateTableName guards the table-name interpolation above against SQL
// injection by allowing only known tables.
func validateTableName(tableName string) error {
	if !validTableNames[tableName] {
		return fmt.Errorf("invalid cache table name: %s", tableName)
	}
	return nil
}
