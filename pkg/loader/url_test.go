package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhad/askdocs/pkg/loader"
)

func newPageServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`
			<html>
				<head><title>Test Page</title></head>
				<body>
					<main>
						<h1>Test Content</h1>
						<p>This is a test paragraph.</p>
					</main>
				</body>
			</html>
		`))
	}))
}

func TestFetchURLs(t *testing.T) {
	var hits int32
	server := newPageServer(t, &hits)
	defer server.Close()

	f := loader.NewFetcherWithConfig(loader.FetcherConfig{
		MaxURLs:   5,
		RateLimit: 50,
		Timeout:   10 * time.Second,
	})

	docs, err := f.FetchURLs(context.Background(), []string{server.URL, server.URL})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	doc := docs[0]
	assert.Equal(t, server.URL, doc.Source)
	assert.Equal(t, "Test Page", doc.Title)
	assert.Contains(t, doc.Content, "Test Content")
	assert.Contains(t, doc.Content, "This is a test paragraph")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetchURLsRejectsOversizedBatch(t *testing.T) {
	var hits int32
	server := newPageServer(t, &hits)
	defer server.Close()

	f := loader.NewFetcherWithConfig(loader.FetcherConfig{MaxURLs: 5, RateLimit: 50})

	urls := make([]string, 6)
	for i := range urls {
		urls[i] = server.URL
	}

	docs, err := f.FetchURLs(context.Background(), urls)
	require.Error(t, err)
	assert.Nil(t, docs)

	var tooMany *loader.TooManyURLsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 6, tooMany.Count)
	assert.Equal(t, 5, tooMany.Max)

	// Rejected before any network fetch
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestFetchURLsNamesFailingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := loader.NewFetcherWithConfig(loader.FetcherConfig{MaxURLs: 5, RateLimit: 50})

	_, err := f.FetchURLs(context.Background(), []string{server.URL})
	require.Error(t, err)

	var parseErr *loader.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, server.URL, parseErr.Name)
}
