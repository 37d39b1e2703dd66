package metadata

import (
	"errors"
	"strings"
	"time"

	"github.com/cusox/bgmeta/internal/bangumi"
)

// ErrIncompleteSubject is returned when a subject record lacks the fields
// required to identify a book. The record is unusable and must be dropped.
var ErrIncompleteSubject = errors.New("subject record missing id or name")

// authorKeys are the infobox keys that contribute author names, in priority
// order: author, original work, art, illustration variants.
var authorKeys = []string{"作者", "原作", "作画", "插图", "插画"}

const (
	publisherKey   = "出版社"
	releaseDateKey = "发售日"
	isbnKey        = "ISBN"
)

// dateLayouts are tried in order against the subject date and the infobox
// release date. Bangumi mixes ISO dates with Chinese-formatted ones.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006年1月2日",
	"2006年1月",
	"2006",
}

// Normalize converts a raw subject into a canonical book record.
func Normalize(subject *bangumi.Subject, opts Options) (*Book, error) {
	if subject == nil || subject.ID == 0 || subject.Name == "" {
		return nil, ErrIncompleteSubject
	}

	book := &Book{
		Title:     subject.Name,
		TitleCN:   subject.NameCN,
		Authors:   subject.Infobox.Values(authorKeys...),
		Cover:     subject.Images.Large,
		Tags:      filterTags(subject.Tags, opts),
		Publisher: subject.Infobox.First(publisherKey),
		Comments:  subject.Summary,
		Rating:    normalizeRating(subject.Rating.Score),
		ISBN:      subject.Infobox.First(isbnKey),
		BangumiID: subject.ID,
	}

	date := subject.Date
	if date == "" {
		date = subject.Infobox.First(releaseDateKey)
	}
	book.Pubdate = parseDate(date)

	return book, nil
}

// filterTags keeps tags with at least TagUserCount taggers, capped at
// TagCount in the API's original order.
func filterTags(tags []bangumi.Tag, opts Options) []string {
	var result []string
	for _, tag := range tags {
		if tag.Count >= opts.TagUserCount {
			result = append(result, tag.Name)
		}
		if opts.TagCount > 0 && len(result) >= opts.TagCount {
			break
		}
	}
	return result
}

// normalizeRating maps Bangumi's 0-10 score onto the host's 0-5 scale.
func normalizeRating(score float64) float64 {
	rating := score / 2
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
