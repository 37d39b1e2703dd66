// Package selftest exercises the lookup entry point with fixed sample
// queries. It is a development harness, not part of the production surface.
package selftest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cusox/bgmeta/internal/host"
)

// Case is one fixed lookup the harness runs.
type Case struct {
	Name        string
	Title       string
	Identifiers map[string]string
	// WantResults is the minimum number of records the case must emit.
	WantResults int
}

// DefaultCases returns the stock sample queries.
func DefaultCases() []Case {
	return []Case{
		{
			Name:        "identifier lookup",
			Title:       "OVERLORD",
			Identifiers: map[string]string{host.IdentifierBangumi: "136517"},
			WantResults: 1,
		},
		{
			Name:  "title lookup",
			Title: "欢迎来到实力至上主义的教室 0",
		},
	}
}

type recordCollector struct {
	records []*host.Record
}

func (c *recordCollector) Put(r *host.Record) {
	c.records = append(c.records, r)
}

// Run executes each case against the source and returns an error when a case
// emits fewer records than it requires.
func Run(ctx context.Context, source *host.Source, cases []Case) error {
	var failed int

	for _, tc := range cases {
		sink := &recordCollector{}
		source.Identify(ctx, host.Query{
			Title:       tc.Title,
			Identifiers: tc.Identifiers,
		}, sink)

		slog.Info("Self-test case finished", "case", tc.Name, "records", len(sink.records))
		for _, record := range sink.records {
			slog.Info("Record",
				"title", record.Title,
				"authors", record.Authors,
				"bgm", record.Identifiers[host.IdentifierBangumi],
				"isbn", record.Identifiers[host.IdentifierISBN],
			)
		}

		if len(sink.records) < tc.WantResults {
			slog.Error("Self-test case failed",
				"case", tc.Name,
				"records", len(sink.records),
				"want_at_least", tc.WantResults,
			)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d self-test case(s) failed", failed)
	}
	return nil
}
