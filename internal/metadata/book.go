// Package metadata normalizes raw Bangumi subject records into book records.
package metadata

import "time"

// Book is the canonical intermediate book record produced from a subject.
// BangumiID is always present and is the unique external key; every other
// field is best-effort and may be zero.
type Book struct {
	Title     string
	TitleCN   string
	Authors   []string
	Cover     string
	Tags      []string
	Pubdate   time.Time // zero when unknown
	Publisher string
	Comments  string
	Rating    float64 // 0-5 scale
	ISBN      string
	BangumiID int
}

// DisplayTitle prefers the localized title and falls back to the canonical one.
func (b *Book) DisplayTitle() string {
	if b.TitleCN != "" {
		return b.TitleCN
	}
	return b.Title
}

// Options controls tag filtering during normalization. A value is snapshotted
// per lookup so concurrent lookups never share mutable configuration.
type Options struct {
	// TagUserCount is the minimum number of taggers for a tag to be kept.
	TagUserCount int
	// TagCount is the maximum number of tags kept, in API order.
	TagCount int
}

// DefaultOptions returns the tag filtering defaults.
func DefaultOptions() Options {
	return Options{
		TagUserCount: 5,
		TagCount:     10,
	}
}
