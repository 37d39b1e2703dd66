package cache

// All cache tables use "cache_key" as the primary key column.

// isbnMapSchema maps ISBNs to Bangumi subject IDs.
const isbnMapSchema = `
CREATE TABLE IF NOT EXISTS isbn_map_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_isbn_map_cached_at ON isbn_map_cache(cached_at);
`

// coverURLSchema maps Bangumi subject IDs to cover image URLs.
const coverURLSchema = `
CREATE TABLE IF NOT EXISTS cover_url_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cover_url_cached_at ON cover_url_cache(cached_at);
`

// subjectSchema caches raw subject API responses.
const subjectSchema = `
CREATE TABLE IF NOT EXISTS subject_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_subject_cached_at ON subject_cache(cached_at);
`

var allSchemas = []string{
	isbnMapSchema,
	coverURLSchema,
	subjectSchema,
}

// validTableNames is the whitelist of allowed cache table names, used to
// prevent SQL injection when interpolating table names.
var validTableNames = map[string]bool{
	"isbn_map_cache":  true,
	"cover_url_cache": true,
	"subject_cache":   true,
}

// TableNames lists the cache tables, for maintenance commands.
func TableNames() []string {
	return []string{"isbn_map_cache", "cover_url_cache", "subject_cache"}
}
