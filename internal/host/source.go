package host

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cusox/bgmeta/internal/identify"
	"github.com/cusox/bgmeta/internal/metadata"
)

const (
	// SourceName identifies this metadata source to the host.
	SourceName = "Bangumi"

	defaultSiteURL = "https://bangumi.tv"
)

// IdentifierCache is the host's caching collaborator. Associations reported
// here let the host resolve covers without re-running a lookup. A nil cache
// is valid; all calls are then skipped.
type IdentifierCache interface {
	CacheISBN(isbn, bangumiID string)
	CacheCoverURL(bangumiID, coverURL string)
	IdentifierFromISBN(isbn string) string
	CoverURL(bangumiID string) string
}

// Source is the Bangumi metadata source.
type Source struct {
	client     identify.Client
	cache      IdentifierCache
	opts       metadata.Options
	siteURL    string
	httpClient *http.Client
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithSiteURL overrides the website base used for book detail links.
func WithSiteURL(base string) SourceOption {
	return func(s *Source) {
		if base != "" {
			s.siteURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithCoverHTTPClient overrides the HTTP client used for cover downloads.
func WithCoverHTTPClient(c *http.Client) SourceOption {
	return func(s *Source) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// NewSource creates the metadata source. The options value is snapshotted
// here and read-only for the lifetime of the source.
func NewSource(client identify.Client, cache IdentifierCache, opts metadata.Options, sourceOpts ...SourceOption) *Source {
	s := &Source{
		client:     client,
		cache:      cache,
		opts:       opts,
		siteURL:    defaultSiteURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range sourceOpts {
		opt(s)
	}
	return s
}

// Identify looks a book up by identifier or title and streams the resulting
// metadata records to sink. It never returns a value: every failure is scoped
// to a single candidate and degrades the result set instead of aborting.
func (s *Source) Identify(ctx context.Context, query Query, sink MetadataSink) {
	engine := identify.NewEngine(s.client, s.opts)

	var books []*metadata.Book
	if id := query.BangumiID(); id != 0 {
		slog.Info("Looking up book by Bangumi ID", "id", id)
		books = engine.LookupByID(ctx, id)
	} else {
		slog.Info("Looking up book by title", "title", query.Title)
		books = engine.SearchAndExpand(ctx, query.Title)
	}

	slog.Info("Lookup finished", "candidates", len(books))

	ranked := identify.Rank(query.Title, books, engine.MaxResults())

	for _, book := range ranked {
		record := newRecord(book)

		if s.cache != nil {
			bangumiID := record.Identifiers[IdentifierBangumi]
			if book.ISBN != "" {
				s.cache.CacheISBN(book.ISBN, bangumiID)
			}
			if book.Cover != "" {
				s.cache.CacheCoverURL(bangumiID, book.Cover)
			}
		}

		sink.Put(record)
	}
}

// BookURL builds the Bangumi detail-page link for a bgm identifier. Returns
// the empty string when the query carries no bgm identifier.
func (s *Source) BookURL(identifiers map[string]string) string {
	id := identifiers[IdentifierBangumi]
	if id == "" {
		return ""
	}
	return fmt.Sprintf("%s/subject/%s", s.siteURL, id)
}

// CachedCoverURL resolves a cover URL from the host cache: directly by bgm
// identifier, or via the isbn→bgm mapping when only an ISBN is known.
func (s *Source) CachedCoverURL(identifiers map[string]string) string {
	if s.cache == nil {
		return ""
	}

	if id := identifiers[IdentifierBangumi]; id != "" {
		return s.cache.CoverURL(id)
	}
	if isbn := identifiers[IdentifierISBN]; isbn != "" {
		if id := s.cache.IdentifierFromISBN(isbn); id != "" {
			return s.cache.CoverURL(id)
		}
	}
	return ""
}
