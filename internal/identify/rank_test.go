package identify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cusox/bgmeta/internal/metadata"
)

func TestScore_ContainmentWinsOutright(t *testing.T) {
	book := &metadata.Book{
		Title:   "オーバーロード (1)",
		TitleCN: "不死者之王 (1)",
	}

	// "overlord" is not a substring of either title; fuzzy score applies.
	fuzzyScore := Score("overlord", book)
	assert.GreaterOrEqual(t, fuzzyScore, 0.0)
	assert.Less(t, fuzzyScore, 1.0)

	// Containment in the localized title forces 1.0.
	assert.Equal(t, 1.0, Score("不死者之王", book))

	// Containment is case-insensitive on the canonical title too.
	latin := &metadata.Book{Title: "OVERLORD Vol. 1"}
	assert.Equal(t, 1.0, Score("overlord", latin))
}

func TestScore_AlwaysWithinUnitInterval(t *testing.T) {
	books := []*metadata.Book{
		{Title: "a"},
		{Title: "completely different title"},
		{Title: "", TitleCN: ""},
		{Title: "オーバーロード (1)", TitleCN: "不死者之王 (1)"},
	}

	for i, book := range books {
		t.Run(fmt.Sprintf("book_%d", i), func(t *testing.T) {
			score := Score("overlord", book)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		})
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	books := []*metadata.Book{
		{BangumiID: 1, Title: "unrelated story"},
		{BangumiID: 2, Title: "OVERLORD Vol. 2"},
		{BangumiID: 3, Title: "over the hills"},
	}

	ranked := Rank("overlord", books, 10)
	assert.Len(t, ranked, 3)
	assert.Equal(t, 2, ranked[0].BangumiID)
}

func TestRank_StableForEqualScores(t *testing.T) {
	// All three titles contain the query, so every score is 1.0 and the
	// original discovery order must survive.
	books := []*metadata.Book{
		{BangumiID: 10, Title: "overlord 1"},
		{BangumiID: 20, Title: "overlord 2"},
		{BangumiID: 30, Title: "overlord 3"},
	}

	ranked := Rank("overlord", books, 10)
	assert.Equal(t, []int{10, 20, 30}, []int{ranked[0].BangumiID, ranked[1].BangumiID, ranked[2].BangumiID})
}

func TestRank_TruncatesToCap(t *testing.T) {
	var books []*metadata.Book
	for i := 0; i < 15; i++ {
		books = append(books, &metadata.Book{BangumiID: i + 1, Title: fmt.Sprintf("overlord %d", i+1)})
	}

	ranked := Rank("overlord", books, 10)
	assert.Len(t, ranked, 10)
}

func TestRank_EmptyQuerySkipsScoring(t *testing.T) {
	books := []*metadata.Book{
		{BangumiID: 2, Title: "b"},
		{BangumiID: 1, Title: "a"},
	}

	ranked := Rank("", books, 10)
	assert.Equal(t, books, ranked)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("same", "same"))
	assert.Equal(t, 0.0, similarity("", "nonempty"))
	assert.Equal(t, 1.0, similarity("", ""))

	s := similarity("kitten", "sitting")
	assert.Greater(t, s, 0.0)
	assert.Less(t, s, 1.0)
}
