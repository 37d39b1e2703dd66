package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cusox/bgmeta/internal/bangumi"
	"github.com/cusox/bgmeta/internal/cache"
	"github.com/cusox/bgmeta/internal/config"
	"github.com/cusox/bgmeta/internal/host"
	"github.com/cusox/bgmeta/internal/identify"
	"github.com/cusox/bgmeta/internal/metadata"
)

// IdentifyCmd represents the identify command.
type IdentifyCmd struct {
	Title   string        `short:"t" help:"Book title to search for"`
	BgmID   string        `name:"bgm-id" help:"Bangumi subject ID to look up directly"`
	ISBN    string        `help:"Known ISBN, recorded on the emitted identifiers"`
	Timeout time.Duration `help:"Lookup time budget" default:"30s"`
	JSON    bool          `help:"Print records as JSON lines instead of text"`
}

// Run executes the identify command.
func (c *IdentifyCmd) Run() error {
	if c.Title == "" && c.BgmID == "" {
		return fmt.Errorf("either --title or --bgm-id is required")
	}

	source, db := newSource()
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	identifiers := map[string]string{}
	if c.BgmID != "" {
		identifiers[host.IdentifierBangumi] = c.BgmID
	}
	if c.ISBN != "" {
		identifiers[host.IdentifierISBN] = c.ISBN
	}

	sink := &printSink{jsonOutput: c.JSON}
	source.Identify(ctx, host.Query{
		Title:       c.Title,
		Identifiers: identifiers,
	}, sink)

	if sink.count == 0 {
		slog.Info("No metadata records found")
	}
	return nil
}

type printSink struct {
	jsonOutput bool
	count      int
}

func (s *printSink) Put(record *host.Record) {
	s.count++

	if s.jsonOutput {
		if err := json.NewEncoder(os.Stdout).Encode(record); err != nil {
			slog.Error("Failed to encode record", "error", err)
		}
		return
	}

	fmt.Printf("%s\n", record.Title)
	if len(record.Authors) > 0 {
		fmt.Printf("  authors:   %s\n", strings.Join(record.Authors, ", "))
	}
	if record.Publisher != "" {
		fmt.Printf("  publisher: %s\n", record.Publisher)
	}
	if !record.Pubdate.IsZero() {
		fmt.Printf("  pubdate:   %s\n", record.Pubdate.Format("2006-01-02"))
	}
	if record.Rating > 0 {
		fmt.Printf("  rating:    %.1f/5\n", record.Rating)
	}
	if len(record.Tags) > 0 {
		fmt.Printf("  tags:      %s\n", strings.Join(record.Tags, ", "))
	}
	fmt.Printf("  bgm:       %s\n", record.Identifiers[host.IdentifierBangumi])
	if isbn := record.Identifiers[host.IdentifierISBN]; isbn != "" {
		fmt.Printf("  isbn:      %s\n", isbn)
	}
}

// newSource wires the Bangumi client, the cache database and the metadata
// source from the global configuration. A cache failure degrades to an
// uncached source instead of failing the command.
func newSource() (*host.Source, *cache.DB) {
	client := bangumi.NewClient(
		bangumi.WithBaseURL(config.APIBaseURL),
		bangumi.WithUserAgent(config.UserAgent),
		bangumi.WithSearchLimit(config.SearchLimit),
	)

	opts := metadata.Options{
		TagUserCount: config.TagUserCount,
		TagCount:     config.TagCount,
	}

	db, err := cache.OpenFromConfig()
	if err != nil {
		slog.Warn("Failed to open cache database, continuing without cache", "error", err)
		return host.NewSource(client, nil, opts, host.WithSiteURL(config.SiteBaseURL)), nil
	}

	var engineClient identify.Client = cache.NewClient(client, db)
	return host.NewSource(engineClient, cache.NewIdentifiers(db), opts,
		host.WithSiteURL(config.SiteBaseURL)), db
}
