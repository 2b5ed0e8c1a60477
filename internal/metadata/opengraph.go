package metadata

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/pkg/utils"
)

// OpenGraphExtractor is the generic extractor: one timed GET, then Open
// Graph and standard meta tags read out of the static HTML.
type OpenGraphExtractor struct {
	fetcher *Fetcher
}

func NewOpenGraphExtractor(fetcher *Fetcher) *OpenGraphExtractor {
	return &OpenGraphExtractor{fetcher: fetcher}
}

// Extract fetches target and builds a preview from its meta tags. Network
// and parse errors propagate; the orchestrator owns the fallback.
func (e *OpenGraphExtractor) Extract(ctx context.Context, target *SafeURL, source entity.SourceType) (*entity.Metadata, error) {
	body, finalURL, err := e.fetcher.Get(ctx, target)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", ErrFetch, err)
	}

	md := metadataFromDocument(doc, finalURL, source)
	if md.Title == "" {
		md.Title = finalURL
	}
	return md, nil
}

// metadataFromDocument reads preview fields out of a parsed document in the
// documented priority order. Shared by the static and rendered stages; it
// leaves Title empty when the page offers nothing so callers can layer their
// own fallbacks.
func metadataFromDocument(doc *goquery.Document, pageURL string, source entity.SourceType) *entity.Metadata {
	md := &entity.Metadata{URL: pageURL, SourceType: source}

	md.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	md.Description = firstNonEmpty(
		metaContent(doc, `meta[property="og:description"]`),
		metaContent(doc, `meta[name="description"]`),
	)
	md.Thumbnail = absolutize(pageURL, firstNonEmpty(
		metaContent(doc, `meta[property="og:image"]`),
		metaContent(doc, `meta[name="twitter:image"]`),
	))
	md.VideoURL = absolutize(pageURL, firstNonEmpty(
		metaContent(doc, `meta[property="og:video:secure_url"]`),
		metaContent(doc, `meta[property="og:video"]`),
		metaContent(doc, `meta[name="twitter:player:stream"]`),
	))
	return md
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// absolutize resolves a possibly relative media reference against the page
// URL. Sites occasionally emit og:image as a path.
func absolutize(pageURL, ref string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	abs, err := utils.ToAbsoluteURL(base, ref)
	if err != nil {
		return ref
	}
	return abs
}
