package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/glorpus-work/storysync/pkg/model"
	"github.com/glorpus-work/storysync/pkg/netx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPayload = `{
  "data": [
    {
      "name": "obs",
      "owner": "unfoldingword",
      "language": "en",
      "title": "Open Bible Stories",
      "repo": {"description": "50 key stories"},
      "release": {"tag_name": "v7.0", "published_at": "2024-03-01T12:00:00Z"}
    },
    {
      "name": "obs",
      "owner": "door43",
      "language": "es",
      "title": "Historias Biblicas Abiertas",
      "repo": {"description": "50 historias"},
      "release": {"tag_name": "6.1", "published_at": "2023-11-20T08:30:00Z"}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	net := netx.NewClient(
		netx.ProberFunc(func(context.Context) bool { return true }),
		netx.Options{Timeout: time.Second},
	)
	return NewHTTPClient(net, Options{BaseURL: server.URL}), server
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/catalog/search", r.URL.Path)
		gotQuery = map[string]string{
			"subject": r.URL.Query().Get("subject"),
			"stage":   r.URL.Query().Get("stage"),
			"owner":   r.URL.Query().Get("owner"),
			"lang":    r.URL.Query().Get("lang"),
		}
		_, _ = w.Write([]byte(searchPayload))
	})

	repos, err := client.Search(context.Background(), Query{Owner: "unfoldingword", Language: "en"})
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, DefaultSubject, gotQuery["subject"])
	assert.Equal(t, "prod", gotQuery["stage"])
	assert.Equal(t, "unfoldingword", gotQuery["owner"])
	assert.Equal(t, "en", gotQuery["lang"])

	first := repos[0]
	assert.Equal(t, "unfoldingword/en/obs", first.Key().String())
	assert.Equal(t, "Open Bible Stories", first.DisplayName)
	assert.Equal(t, "50 key stories", first.Description)
	assert.Equal(t, "7.0", first.Version, "release tag v prefix is stripped")
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), first.LastUpdated)
	assert.NotEmpty(t, first.Thumbnail)
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	repos, err := client.Search(context.Background(), Query{Language: "tlh"})
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestSearch_MalformedPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": not json`))
	})

	_, err := client.Search(context.Background(), Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrParse)
}

func TestSearch_HTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHTTP)
}

func TestLookup(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(searchPayload))
	})

	t.Run("hit", func(t *testing.T) {
		key := model.RepositoryKey{Owner: "unfoldingword", Language: "en", ID: "obs"}
		repo, err := client.Lookup(context.Background(), key)
		require.NoError(t, err)
		require.NotNil(t, repo)
		assert.Equal(t, key, repo.Key())
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		key := model.RepositoryKey{Owner: "unknown", Language: "en", ID: "obs"}
		repo, err := client.Lookup(context.Background(), key)
		require.NoError(t, err)
		assert.Nil(t, repo)
	})
}

func TestLookup_Offline(t *testing.T) {
	net := netx.NewClient(
		netx.ProberFunc(func(context.Context) bool { return false }),
		netx.Options{Timeout: time.Second},
	)
	client := NewHTTPClient(net, Options{BaseURL: "https://catalog.example.com"})

	_, err := client.Lookup(context.Background(), model.RepositoryKey{Owner: "o", Language: "l", ID: "i"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrOffline)
}

func TestResolveArchiveURL(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/catalog/entry/unfoldingword/obs/master", r.URL.Path)
		_, _ = w.Write([]byte(`{"zipball_url": "https://cdn.example.com/obs-7.0.zip"}`))
	})

	got, err := client.ResolveArchiveURL(context.Background(), model.RepositoryKey{
		Owner: "unfoldingword", Language: "en", ID: "obs",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/obs-7.0.zip", got)
}

func TestResolveArchiveURL_MissingZipball(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.ResolveArchiveURL(context.Background(), model.RepositoryKey{
		Owner: "o", Language: "l", ID: "i",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrParse)
}
