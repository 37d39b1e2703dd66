package cmd

import (
	"context"
	"time"

	"github.com/cusox/bgmeta/internal/selftest"
)

// SelftestCmd runs the built-in lookup self-test.
type SelftestCmd struct {
	Timeout time.Duration `help:"Time budget per self-test run" default:"60s"`
}

// Run executes the selftest command.
func (c *SelftestCmd) Run() error {
	source, db := newSource()
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	return selftest.Run(ctx, source, selftest.DefaultCases())
}
