// Package identify implements the search, expansion and ranking pipeline
// behind a metadata lookup.
package identify

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cusox/bgmeta/internal/bangumi"
	"github.com/cusox/bgmeta/internal/metadata"
)

const (
	// defaultWorkers bounds the concurrent fetches per pipeline phase.
	defaultWorkers = 5
	// defaultMaxResults caps the number of books returned from a lookup.
	defaultMaxResults = 10
)

// Client is the subset of the Bangumi client the engine needs.
type Client interface {
	SearchSubjects(ctx context.Context, keyword string) ([]int, error)
	Subject(ctx context.Context, id int) (*bangumi.Subject, error)
	RelatedBookIDs(ctx context.Context, id int) ([]int, error)
}

// Engine drives one lookup invocation. Worker pools are scoped to a single
// call; the engine itself holds no per-call state.
type Engine struct {
	client     Client
	opts       metadata.Options
	workers    int
	maxResults int
}

// NewEngine creates an engine using the given client and tag options.
func NewEngine(client Client, opts metadata.Options) *Engine {
	return &Engine{
		client:     client,
		opts:       opts,
		workers:    defaultWorkers,
		maxResults: defaultMaxResults,
	}
}

// MaxResults returns the result cap applied after ranking.
func (e *Engine) MaxResults() int {
	return e.maxResults
}

// LookupByID fetches and normalizes a single subject. A transport failure or
// an unusable record yields an empty result, not an error.
func (e *Engine) LookupByID(ctx context.Context, id int) []*metadata.Book {
	book := e.fetchBook(ctx, id)
	if book == nil {
		return nil
	}
	return []*metadata.Book{book}
}

// SearchAndExpand finds candidate subjects for a free-text title, expands the
// candidate set with same-series sibling volumes and fetches every candidate
// concurrently. A single title search frequently returns only one volume of a
// multi-volume series; the expansion recovers the siblings.
//
// Cancellation is checked between phases: once ctx is done no new requests
// are started, but in-flight ones finish naturally.
func (e *Engine) SearchAndExpand(ctx context.Context, title string) []*metadata.Book {
	ids, err := e.client.SearchSubjects(ctx, title)
	if err != nil {
		slog.Error("Subject search failed", "title", title, "error", err)
		return nil
	}
	if len(ids) == 0 {
		slog.Info("No subjects match the title", "title", title)
		return nil
	}

	if ctx.Err() != nil {
		return nil
	}
	expanded := e.expandCandidates(ctx, ids)

	if ctx.Err() != nil {
		return nil
	}
	return e.fetchBooks(ctx, expanded)
}

// expandCandidates pulls in the book-typed relations of every candidate and
// returns the deduplicated union, sorted for deterministic fetch order.
func (e *Engine) expandCandidates(ctx context.Context, ids []int) []int {
	var mu sync.Mutex
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, id := range ids {
		g.Go(func() error {
			related, err := e.client.RelatedBookIDs(gctx, id)
			if err != nil {
				slog.Debug("Relation fetch failed, keeping candidate as-is", "id", id, "error", err)
				return nil
			}
			mu.Lock()
			for _, rel := range related {
				seen[rel] = true
			}
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; failures are per-candidate and logged.
	_ = g.Wait()

	expanded := make([]int, 0, len(seen))
	for id := range seen {
		expanded = append(expanded, id)
	}
	sort.Ints(expanded)
	return expanded
}

// fetchBooks fetches and normalizes every candidate with the same bounded
// pool shape. Candidates whose fetch or normalization fails are dropped.
func (e *Engine) fetchBooks(ctx context.Context, ids []int) []*metadata.Book {
	var mu sync.Mutex
	books := make([]*metadata.Book, 0, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, id := range ids {
		g.Go(func() error {
			if book := e.fetchBook(gctx, id); book != nil {
				mu.Lock()
				books = append(books, book)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	// Deterministic discovery order for the stable ranking tie-break.
	sort.Slice(books, func(i, j int) bool { return books[i].BangumiID < books[j].BangumiID })
	return books
}

func (e *Engine) fetchBook(ctx context.Context, id int) *metadata.Book {
	subject, err := e.client.Subject(ctx, id)
	if err != nil {
		slog.Error("Subject fetch failed", "id", id, "error", err)
		return nil
	}

	book, err := metadata.Normalize(subject, e.opts)
	if err != nil {
		slog.Debug("Dropping unusable subject record", "id", id, "error", err)
		return nil
	}
	return book
}
