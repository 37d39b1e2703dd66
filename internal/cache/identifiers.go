package cache

import "log/slog"

// Identifiers adapts the cache database to the host's identifier-cache
// collaborator: (isbn → bgm id) and (bgm id → cover URL) associations.
// All failures are logged and swallowed; a cold cache is never an error.
type Identifiers struct {
	db *DB
}

// NewIdentifiers creates the identifier cache on top of db.
func NewIdentifiers(db *DB) *Identifiers {
	return &Identifiers{db: db}
}

// CacheISBN records an isbn → bgm id association.
func (i *Identifiers) CacheISBN(isbn, bangumiID string) {
	if isbn == "" || bangumiID == "" {
		return
	}
	if err := i.db.Set("isbn_map_cache", isbn, bangumiID); err != nil {
		slog.Warn("Failed to cache ISBN mapping", "isbn", isbn, "error", err)
	}
}

// CacheCoverURL records a bgm id → cover URL association.
func (i *Identifiers) CacheCoverURL(bangumiID, coverURL string) {
	if bangumiID == "" || coverURL == "" {
		return
	}
	if err := i.db.Set("cover_url_cache", bangumiID, coverURL); err != nil {
		slog.Warn("Failed to cache cover URL", "id", bangumiID, "error", err)
	}
}

// IdentifierFromISBN resolves an ISBN to a bgm id, or "" when unknown.
func (i *Identifiers) IdentifierFromISBN(isbn string) string {
	if isbn == "" {
		return ""
	}
	id, ok, err := i.db.Get("isbn_map_cache", isbn, TTL())
	if err != nil {
		slog.Warn("Failed to read ISBN mapping", "isbn", isbn, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return id
}

// CoverURL resolves a bgm id to its cached cover URL, or "" when unknown.
func (i *Identifiers) CoverURL(bangumiID string) string {
	if bangumiID == "" {
		return ""
	}
	url, ok, err := i.db.Get("cover_url_cache", bangumiID, TTL())
	if err != nil {
		slog.Warn("Failed to read cover URL", "id", bangumiID, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return url
}
