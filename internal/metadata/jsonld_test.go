package metadata

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseStructuredData_PlainObject(t *testing.T) {
	doc := docFromHTML(t, `<html><head><script type="application/ld+json">
		{"@type": "Product", "name": "Lamp", "description": "A lamp", "image": "https://cdn.example.com/lamp.jpg"}
	</script></head></html>`)

	sd := parseStructuredData(doc)
	require.NotNil(t, sd)
	assert.Equal(t, "Lamp", sd.title())
	assert.Equal(t, "A lamp", sd.description())
	assert.Equal(t, "https://cdn.example.com/lamp.jpg", sd.thumbnail())
}

func TestParseStructuredData_TopLevelArray(t *testing.T) {
	doc := docFromHTML(t, `<html><head><script type="application/ld+json">
		[{"@type": "Article", "headline": "First Entry"}]
	</script></head></html>`)

	sd := parseStructuredData(doc)
	require.NotNil(t, sd)
	assert.Equal(t, "First Entry", sd.title())
}

func TestParseStructuredData_GraphContainer(t *testing.T) {
	doc := docFromHTML(t, `<html><head><script type="application/ld+json">
		{"@context": "https://schema.org", "@graph": [{"@type": "VideoObject", "name": "Clip", "contentUrl": "https://cdn.example.com/clip.mp4"}]}
	</script></head></html>`)

	sd := parseStructuredData(doc)
	require.NotNil(t, sd)
	assert.Equal(t, "Clip", sd.title())
	assert.Equal(t, "https://cdn.example.com/clip.mp4", sd.videoURL())
}

func TestParseStructuredData_SkipsMalformedBlocks(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<script type="application/ld+json">{not json at all</script>
		<script type="application/ld+json">{"name": "Recovered"}</script>
	</head></html>`)

	sd := parseStructuredData(doc)
	require.NotNil(t, sd)
	assert.Equal(t, "Recovered", sd.title())
}

func TestParseStructuredData_NoBlocks(t *testing.T) {
	doc := docFromHTML(t, `<html><head><title>x</title></head></html>`)
	assert.Nil(t, parseStructuredData(doc))
}

func TestUnwrapString_ValueShapes(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"plain string", "  hello  ", "hello"},
		{"list picks first non-empty", []any{"", "second"}, "second"},
		{"object with url", map[string]any{"url": "https://example.com/a.jpg"}, "https://example.com/a.jpg"},
		{"object with contentUrl", map[string]any{"contentUrl": "https://example.com/v.mp4"}, "https://example.com/v.mp4"},
		{"list of objects", []any{map[string]any{"url": "https://example.com/b.jpg"}}, "https://example.com/b.jpg"},
		{"number", float64(42), ""},
		{"nil", nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, unwrapString(tc.value))
		})
	}
}

func TestStructuredData_KeyPriority(t *testing.T) {
	sd := structuredData{
		"name":         "Name Wins",
		"headline":     "Headline Loses",
		"thumbnailUrl": "https://cdn.example.com/thumb.jpg",
		"image":        "https://cdn.example.com/image.jpg",
	}
	assert.Equal(t, "Name Wins", sd.title())
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", sd.thumbnail())

	sd = structuredData{"headline": "Headline Only", "image": "https://cdn.example.com/image.jpg"}
	assert.Equal(t, "Headline Only", sd.title())
	assert.Equal(t, "https://cdn.example.com/image.jpg", sd.thumbnail())
}
