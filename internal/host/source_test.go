package host

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cusox/bgmeta/internal/bangumi"
	"github.com/cusox/bgmeta/internal/metadata"
)

type recordSink struct {
	records []*Record
}

func (s *recordSink) Put(r *Record) {
	s.records = append(s.records, r)
}

// fakeCache records the associations the source reports.
type fakeCache struct {
	isbnToID  map[string]string
	idToCover map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		isbnToID:  make(map[string]string),
		idToCover: make(map[string]string),
	}
}

func (c *fakeCache) CacheISBN(isbn, bangumiID string) { c.isbnToID[isbn] = bangumiID }

func (c *fakeCache) CacheCoverURL(bangumiID, cover string) { c.idToCover[bangumiID] = cover }

func (c *fakeCache) IdentifierFromISBN(isbn string) string { return c.isbnToID[isbn] }

func (c *fakeCache) CoverURL(bangumiID string) string { return c.idToCover[bangumiID] }

func TestIdentify_ByBangumiID(t *testing.T) {
	var searchCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/search/subjects", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&searchCalls, 1)
		_, _ = w.Write([]byte(`{"data": []}`))
	})
	mux.HandleFunc("/subjects/136517", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{
			"id": 136517,
			"name": "Overlord 1",
			"infobox": [{"key": "ISBN", "value": "978-4-04-000000-0"}],
			"images": {"large": "https://lain.bgm.tv/pic/cover/l/136517.jpg"}
		}`))
		require.NoError(t, err)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := bangumi.NewClient(bangumi.WithBaseURL(server.URL))
	cache := newFakeCache()
	source := NewSource(client, cache, metadata.DefaultOptions())

	sink := &recordSink{}
	source.Identify(context.Background(), Query{
		Identifiers: map[string]string{IdentifierBangumi: "136517"},
	}, sink)

	require.Len(t, sink.records, 1)
	record := sink.records[0]
	assert.Equal(t, "Overlord 1", record.Title)
	assert.Equal(t, "136517", record.Identifiers[IdentifierBangumi])
	assert.Equal(t, "978-4-04-000000-0", record.Identifiers[IdentifierISBN])

	// Direct identifier lookup never touches the search endpoint.
	assert.Equal(t, int32(0), atomic.LoadInt32(&searchCalls))

	// The courtesy cache associations were reported.
	assert.Equal(t, "136517", cache.isbnToID["978-4-04-000000-0"])
	assert.Equal(t, "https://lain.bgm.tv/pic/cover/l/136517.jpg", cache.idToCover["136517"])
}

func TestIdentify_NoISBNIdentifierWhenAbsent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/subjects/1", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{"id": 1, "name": "Overlord 1"}`))
		require.NoError(t, err)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := bangumi.NewClient(bangumi.WithBaseURL(server.URL))
	source := NewSource(client, newFakeCache(), metadata.DefaultOptions())

	sink := &recordSink{}
	source.Identify(context.Background(), Query{
		Identifiers: map[string]string{IdentifierBangumi: "1"},
	}, sink)

	require.Len(t, sink.records, 1)
	_, hasISBN := sink.records[0].Identifiers[IdentifierISBN]
	assert.False(t, hasISBN)
}

func TestIdentify_TitleLookupWithNoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/subjects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := bangumi.NewClient(bangumi.WithBaseURL(server.URL))
	source := NewSource(client, newFakeCache(), metadata.DefaultOptions())

	sink := &recordSink{}
	source.Identify(context.Background(), Query{Title: "no such book"}, sink)

	assert.Empty(t, sink.records)
}

func TestIdentify_TransportFailureYieldsNoRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := bangumi.NewClient(bangumi.WithBaseURL(server.URL))
	source := NewSource(client, newFakeCache(), metadata.DefaultOptions())

	sink := &recordSink{}
	source.Identify(context.Background(), Query{
		Identifiers: map[string]string{IdentifierBangumi: "136517"},
	}, sink)

	assert.Empty(t, sink.records)
}

func TestIdentify_NilCacheIsValid(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/subjects/1", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{"id": 1, "name": "Overlord 1"}`))
		require.NoError(t, err)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := bangumi.NewClient(bangumi.WithBaseURL(server.URL))
	source := NewSource(client, nil, metadata.DefaultOptions())

	sink := &recordSink{}
	source.Identify(context.Background(), Query{
		Identifiers: map[string]string{IdentifierBangumi: "1"},
	}, sink)

	require.Len(t, sink.records, 1)
}

func TestBookURL(t *testing.T) {
	source := NewSource(nil, nil, metadata.DefaultOptions())

	url := source.BookURL(map[string]string{IdentifierBangumi: "136517"})
	assert.Equal(t, "https://bangumi.tv/subject/136517", url)

	assert.Equal(t, "", source.BookURL(map[string]string{}))
}

func TestCachedCoverURL(t *testing.T) {
	cache := newFakeCache()
	cache.CacheISBN("978-4-04-000000-0", "136517")
	cache.CacheCoverURL("136517", "https://lain.bgm.tv/pic/cover/l/136517.jpg")

	source := NewSource(nil, cache, metadata.DefaultOptions())

	// Resolution by bgm identifier.
	url := source.CachedCoverURL(map[string]string{IdentifierBangumi: "136517"})
	assert.Equal(t, "https://lain.bgm.tv/pic/cover/l/136517.jpg", url)

	// Resolution via the isbn → bgm mapping.
	url = source.CachedCoverURL(map[string]string{IdentifierISBN: "978-4-04-000000-0"})
	assert.Equal(t, "https://lain.bgm.tv/pic/cover/l/136517.jpg", url)

	// Unknown identifiers resolve to nothing.
	assert.Equal(t, "", source.CachedCoverURL(map[string]string{IdentifierBangumi: "1"}))
}

func TestOptions_DeclaresTagSettings(t *testing.T) {
	source := NewSource(nil, nil, metadata.Options{TagUserCount: 7, TagCount: 12})

	opts := source.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, "tag_user_count", opts[0].Name)
	assert.Equal(t, 7, opts[0].Default)
	assert.Equal(t, "tag_count", opts[1].Name)
	assert.Equal(t, 12, opts[1].Default)
}
