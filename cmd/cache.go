package cmd

import (
	"fmt"

	"github.com/cusox/bgmeta/internal/cache"
)

// CacheCmd groups cache maintenance subcommands.
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Clear cached lookup data"`
}

// CacheClearCmd clears one cache table or all of them.
type CacheClearCmd struct {
	Table string `help:"Cache table to clear (isbn_map_cache, cover_url_cache, subject_cache); empty clears all"`
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run() error {
	db, err := cache.OpenFromConfig()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer func() { _ = db.Close() }()

	tables := cache.TableNames()
	if c.Table != "" {
		tables = []string{c.Table}
	}

	for _, table := range tables {
		if err := db.ClearAll(table); err != nil {
			return err
		}
	}
	return nil
}
