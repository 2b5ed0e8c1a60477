package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imcharliesparks/listmaker/internal/entity"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name   string
		rawURL string
		want   string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with leading params", "https://www.youtube.com/watch?feature=shared&v=abc_123-X", "abc_123-X"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"channel page has no id", "https://www.youtube.com/@somechannel", ""},
		{"unrelated url", "https://example.com/watch?v=abc", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractVideoID(tc.rawURL))
		})
	}
}

func newTestVideoExtractor(endpoint string) *VideoExtractor {
	fetcher := newTestFetcher()
	e := NewVideoExtractor(fetcher, NewOpenGraphExtractor(fetcher))
	if endpoint != "" {
		e.endpoint = endpoint
	}
	return e
}

func TestVideoExtractor_UsesOEmbed(t *testing.T) {
	var gotTarget string
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTarget = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title": "T", "author_name": "Channel A", "thumbnail_url": "https://i.ytimg.com/vi/abc123/hq.jpg"}`)
	}))
	defer oembed.Close()

	extractor := newTestVideoExtractor(oembed.URL)
	md, err := extractor.Extract(context.Background(), mustSafeURL(t, "https://youtu.be/abc123"))
	require.NoError(t, err)

	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", gotTarget)
	assert.Equal(t, "https://youtu.be/abc123", md.URL)
	assert.Equal(t, "T", md.Title)
	assert.Equal(t, "Channel A", md.Description)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hq.jpg", md.Thumbnail)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", md.VideoURL)
	assert.Equal(t, entity.SourceVideo, md.SourceType)
	assert.Equal(t, "abc123", md.Extra["videoId"])
	assert.Equal(t, "Channel A", md.Extra["channelName"])
	assert.True(t, md.HasMedia())
}

func TestVideoExtractor_FallsBackToGenericOnOEmbedFailure(t *testing.T) {
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer oembed.Close()

	// The page path matches the short-link pattern so an ID is found, but
	// the host is the test server, keeping the generic fallback offline.
	page := serveHTML(t, `<html><head>
		<meta property="og:title" content="Static Video Page"/>
		<meta property="og:image" content="https://i.ytimg.com/vi/abc123/og.jpg"/>
	</head></html>`)

	extractor := newTestVideoExtractor(oembed.URL)
	md, err := extractor.Extract(context.Background(), mustSafeURL(t, page.URL+"/youtu.be/abc123"))
	require.NoError(t, err)

	assert.Equal(t, "Static Video Page", md.Title)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/og.jpg", md.Thumbnail)
	assert.Equal(t, entity.SourceVideo, md.SourceType)
}

func TestVideoExtractor_FallsBackOnMalformedOEmbedResponse(t *testing.T) {
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer oembed.Close()

	page := serveHTML(t, `<html><head><meta property="og:title" content="Recovered"/></head></html>`)

	extractor := newTestVideoExtractor(oembed.URL)
	md, err := extractor.Extract(context.Background(), mustSafeURL(t, page.URL+"/youtu.be/abc123"))
	require.NoError(t, err)
	assert.Equal(t, "Recovered", md.Title)
}

func TestVideoExtractor_NoVideoIDYieldsMinimalRecord(t *testing.T) {
	extractor := newTestVideoExtractor("http://127.0.0.1:1/never-called")
	md, err := extractor.Extract(context.Background(), mustSafeURL(t, "https://www.youtube.com/@somechannel"))
	require.NoError(t, err)

	assert.Equal(t, "https://www.youtube.com/@somechannel", md.URL)
	assert.Equal(t, entity.SourceVideo, md.SourceType)
	assert.Empty(t, md.Title)
	assert.False(t, md.HasMedia())
}
