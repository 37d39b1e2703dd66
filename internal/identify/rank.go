package identify

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/cusox/bgmeta/internal/metadata"
)

// Rank orders candidates by descending similarity to the query title and
// truncates to max. Ties keep the original discovery order. An empty query
// (direct identifier lookup) skips scoring and only applies the cap.
func Rank(query string, books []*metadata.Book, max int) []*metadata.Book {
	if max <= 0 || max > len(books) {
		max = len(books)
	}
	if query == "" {
		return books[:max]
	}

	type scored struct {
		score float64
		book  *metadata.Book
	}

	candidates := make([]scored, 0, len(books))
	for _, book := range books {
		candidates = append(candidates, scored{
			score: Score(query, book),
			book:  book,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	ranked := make([]*metadata.Book, 0, max)
	for _, c := range candidates[:max] {
		ranked = append(ranked, c.book)
	}
	return ranked
}

// Score rates a candidate against the query title in [0,1]. Containment of
// the lowercased query in either title wins outright; otherwise the better of
// the two fuzzy similarities is used.
func Score(query string, book *metadata.Book) float64 {
	q := strings.ToLower(query)
	title := strings.ToLower(book.Title)
	titleCN := strings.ToLower(book.TitleCN)

	if strings.Contains(title, q) || (titleCN != "" && strings.Contains(titleCN, q)) {
		return 1.0
	}

	s1 := similarity(q, title)
	s2 := similarity(q, titleCN)
	if s2 > s1 {
		return s2
	}
	return s1
}

// similarity is a normalized edit-distance ratio in [0,1].
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}

	distance := fuzzy.LevenshteinDistance(a, b)
	return 1.0 - float64(distance)/float64(longest)
}
