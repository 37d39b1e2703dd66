package selftest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cusox/bgmeta/internal/bangumi"
	"github.com/cusox/bgmeta/internal/host"
	"github.com/cusox/bgmeta/internal/metadata"
)

func newTestSource(t *testing.T, handler http.Handler) *host.Source {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := bangumi.NewClient(bangumi.WithBaseURL(server.URL))
	return host.NewSource(client, nil, metadata.DefaultOptions())
}

func TestRun_PassesWhenCaseEmitsEnoughRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/subjects/136517", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{"id": 136517, "name": "Overlord 1"}`))
		require.NoError(t, err)
	})

	source := newTestSource(t, mux)

	cases := []Case{
		{
			Name:        "identifier lookup",
			Identifiers: map[string]string{host.IdentifierBangumi: "136517"},
			WantResults: 1,
		},
	}

	assert.NoError(t, Run(context.Background(), source, cases))
}

func TestRun_FailsWhenCaseEmitsTooFew(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	cases := []Case{
		{
			Name:        "identifier lookup",
			Identifiers: map[string]string{host.IdentifierBangumi: "136517"},
			WantResults: 1,
		},
	}

	assert.Error(t, Run(context.Background(), source, cases))
}

func TestRun_ZeroResultTitleCaseIsNotAFailure(t *testing.T) {
	source := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))

	cases := []Case{
		{Name: "title lookup", Title: "no such book"},
	}

	assert.NoError(t, Run(context.Background(), source, cases))
}

func TestDefaultCases(t *testing.T) {
	cases := DefaultCases()
	require.NotEmpty(t, cases)
	assert.Equal(t, "136517", cases[0].Identifiers[host.IdentifierBangumi])
}
