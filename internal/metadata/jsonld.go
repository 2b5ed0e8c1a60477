package metadata

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// structuredData is the first object-shaped JSON-LD entry found in a page.
type structuredData map[string]any

// parseStructuredData scans every application/ld+json block in document
// order, flattens @graph containers, and returns the first object-shaped
// entry. Malformed blocks are skipped, not fatal.
func parseStructuredData(doc *goquery.Document) structuredData {
	var found structuredData
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}
		for _, candidate := range flattenGraph(raw) {
			if obj, ok := candidate.(map[string]any); ok {
				found = obj
				return false
			}
		}
		return true
	})
	return found
}

// flattenGraph expands top-level arrays and @graph containers into a flat
// candidate list.
func flattenGraph(raw any) []any {
	switch v := raw.(type) {
	case []any:
		var out []any
		for _, item := range v {
			out = append(out, flattenGraph(item)...)
		}
		return out
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			return flattenGraph(graph)
		}
		return []any{v}
	default:
		return nil
	}
}

func (sd structuredData) title() string {
	return sd.stringValue("name", "headline")
}

func (sd structuredData) description() string {
	return sd.stringValue("description")
}

func (sd structuredData) thumbnail() string {
	return sd.stringValue("thumbnailUrl", "image")
}

func (sd structuredData) videoURL() string {
	return sd.stringValue("contentUrl", "embedUrl", "url")
}

func (sd structuredData) stringValue(keys ...string) string {
	for _, key := range keys {
		if s := unwrapString(sd[key]); s != "" {
			return s
		}
	}
	return ""
}

// unwrapString handles the three value shapes JSON-LD producers emit: a
// plain string, a list, or an object carrying a nested url/contentUrl.
func unwrapString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s := unwrapString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if s := unwrapString(t["url"]); s != "" {
			return s
		}
		return unwrapString(t["contentUrl"])
	}
	return ""
}
