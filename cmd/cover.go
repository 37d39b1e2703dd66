package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cusox/bgmeta/internal/fileutil"
	"github.com/cusox/bgmeta/internal/host"
)

// CoverCmd represents the cover download command.
type CoverCmd struct {
	BgmID   string        `name:"bgm-id" help:"Bangumi subject ID whose cover to download"`
	ISBN    string        `help:"ISBN to resolve to a Bangumi ID via the cache"`
	Output  string        `short:"o" help:"Directory to write the cover into" default:"."`
	Timeout time.Duration `help:"Download time budget" default:"30s"`
}

// Run executes the cover command. Cover URLs come from the cache populated
// by earlier identify runs; an unknown book needs an identify first.
func (c *CoverCmd) Run() error {
	if c.BgmID == "" && c.ISBN == "" {
		return fmt.Errorf("either --bgm-id or --isbn is required")
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

	name := c.BgmID
	if name == "" {
		name = c.ISBN
	}

	sink := &coverFileSink{dir: c.Output, name: "bgm-" + name}
	source.DownloadCover(ctx, identifiers, sink)

	if !sink.written {
		return fmt.Errorf("no cover downloaded (run identify first to populate the cache)")
	}
	return nil
}

type coverFileSink struct {
	dir     string
	name    string
	written bool
}

func (s *coverFileSink) Put(data []byte) {
	path, err := fileutil.WriteCover(s.dir, s.name, data)
	if err != nil {
		slog.Error("Failed to write cover file", "error", err)
		return
	}
	s.written = true
	slog.Info("Wrote cover", "path", path)
}
