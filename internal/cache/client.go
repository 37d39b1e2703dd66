package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/cusox/bgmeta/internal/bangumi"
)

// SubjectClient is the part of the Bangumi client the cached wrapper covers.
type SubjectClient interface {
	SearchSubjects(ctx context.Context, keyword string) ([]int, error)
	Subject(ctx context.Context, id int) (*bangumi.Subject, error)
	RelatedBookIDs(ctx context.Context, id int) ([]int, error)
}

// Client wraps a Bangumi client and serves subject records from the
// subject_cache table. Searches and relation lists are always live: they are
// small, and stale candidate sets would silently hide new volumes.
type Client struct {
	upstream SubjectClient
	db       *DB
}

// NewClient creates a caching wrapper around upstream.
func NewClient(upstream SubjectClient, db *DB) *Client {
	return &Client{upstream: upstream, db: db}
}

// SearchSubjects passes through to the upstream client.
func (c *Client) SearchSubjects(ctx context.Context, keyword string) ([]int, error) {
	return c.upstream.SearchSubjects(ctx, keyword)
}

// RelatedBookIDs passes through to the upstream client.
func (c *Client) RelatedBookIDs(ctx context.Context, id int) ([]int, error) {
	return c.upstream.RelatedBookIDs(ctx, id)
}

// Subject returns the cached subject record when fresh, fetching and caching
// it otherwise. Cache failures fall back to a direct fetch.
func (c *Client) Subject(ctx context.Context, id int) (*bangumi.Subject, error) {
	key := strconv.Itoa(id)

	cached, ok, err := c.db.Get("subject_cache", key, TTL())
	if err != nil {
		slog.Warn("Subject cache read failed, fetching directly", "id", id, "error", err)
	} else if ok {
		var subject bangumi.Subject
		if uerr := json.Unmarshal([]byte(cached), &subject); uerr == nil {
			slog.Debug("Subject cache hit", "id", id)
			return &subject, nil
		} else {
			slog.Warn("Failed to unmarshal cached subject, refetching", "id", id, "error", uerr)
		}
	}

	slog.Debug("Subject cache miss, fetching", "id", id)
	subject, err := c.upstream.Subject(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(subject)
	if err != nil {
		slog.Warn("Failed to marshal subject for caching", "id", id, "error", err)
		return subject, nil
	}
	if err := c.db.Set("subject_cache", key, string(data)); err != nil {
		// Caching failure must not fail the lookup.
		slog.Warn("Failed to cache subject", "id", id, "error", err)
	}

	return subject, nil
}
