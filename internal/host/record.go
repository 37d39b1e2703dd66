// Package host exposes the metadata source surface consumed by the e-book
// manager: lookup streaming into a result sink, cover download, detail-page
// URLs and the source's configuration option declarations.
package host

import (
	"strconv"
	"time"

	"github.com/cusox/bgmeta/internal/metadata"
)

// Identifier names used in Record.Identifiers and lookup queries.
const (
	IdentifierBangumi = "bgm"
	IdentifierISBN    = "isbn"
)

// Record is the metadata object handed to the host's result sink.
type Record struct {
	Title       string
	Authors     []string
	Cover       string
	Tags        []string
	Pubdate     time.Time
	Publisher   string
	Comments    string
	Rating      float64 // 0-5 scale
	Identifiers map[string]string
}

// MetadataSink receives metadata records as the lookup produces them.
type MetadataSink interface {
	Put(*Record)
}

// CoverSink receives downloaded cover image bytes.
type CoverSink interface {
	Put(data []byte)
}

// Query describes one lookup request from the host.
type Query struct {
	Title       string
	Authors     []string
	Identifiers map[string]string
}

// BangumiID returns the query's bgm identifier, or 0 when absent.
func (q Query) BangumiID() int {
	raw := q.Identifiers[IdentifierBangumi]
	if raw == "" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return id
}

// newRecord maps a canonical book onto the host metadata object. The bgm
// identifier is always set; isbn only when present.
func newRecord(book *metadata.Book) *Record {
	record := &Record{
		Title:     book.DisplayTitle(),
		Authors:   book.Authors,
		Cover:     book.Cover,
		Tags:      book.Tags,
		Pubdate:   book.Pubdate,
		Publisher: book.Publisher,
		Comments:  book.Comments,
		Rating:    book.Rating,
		Identifiers: map[string]string{
			IdentifierBangumi: strconv.Itoa(book.BangumiID),
		},
	}
	if book.ISBN != "" {
		record.Identifiers[IdentifierISBN] = book.ISBN
	}
	return record
}
