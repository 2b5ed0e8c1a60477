package metadata

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
)

// PinboardExtractor handles pinboard-style platforms whose static HTML
// frequently omits Open Graph tags. Stage one is a static fetch combining
// meta tags with JSON-LD structured data; when that yields neither thumbnail
// nor video, stage two renders the page in a headless browser and re-runs
// the same parse against the rendered DOM. The extractor itself never fails:
// at worst it returns a preview holding only the URL.
type PinboardExtractor struct {
	fetcher  *Fetcher
	renderer repository.PageRenderer
}

func NewPinboardExtractor(fetcher *Fetcher, renderer repository.PageRenderer) *PinboardExtractor {
	return &PinboardExtractor{fetcher: fetcher, renderer: renderer}
}

// Extract builds a preview for a pinboard URL. The error return exists only
// to satisfy the per-source extractor shape; it is always nil.
func (e *PinboardExtractor) Extract(ctx context.Context, target *SafeURL) (*entity.Metadata, error) {
	static, resolvedURL := e.extractStatic(ctx, target)
	if static != nil && static.HasMedia() {
		return static, nil
	}

	if rendered := e.extractRendered(ctx, target, resolvedURL); rendered != nil {
		if rendered.HasMedia() || static == nil {
			return rendered, nil
		}
	}

	if static != nil {
		return static, nil
	}
	return &entity.Metadata{
		URL:        target.String(),
		Title:      target.String(),
		SourceType: entity.SourcePinboard,
	}, nil
}

// extractStatic fetches the page without a browser. A failed fetch or parse
// returns nil so the rendered stage can take over.
func (e *PinboardExtractor) extractStatic(ctx context.Context, target *SafeURL) (*entity.Metadata, string) {
	body, finalURL, err := e.fetcher.Get(ctx, target)
	if err != nil {
		slog.Debug("static pinboard fetch failed", "url", target.String(), "error", err)
		return nil, ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		slog.Debug("static pinboard parse failed", "url", target.String(), "error", err)
		return nil, finalURL
	}
	return e.fromDocument(doc, finalURL, target.String()), finalURL
}

// extractRendered is the headless-browser fallback for client-rendered meta
// tags. Render failures are recovered locally, never propagated.
func (e *PinboardExtractor) extractRendered(ctx context.Context, target *SafeURL, resolvedURL string) *entity.Metadata {
	html, err := e.renderer.RenderHTML(ctx, target.String())
	if err != nil {
		slog.Warn("headless render failed", "url", target.String(), "error", err)
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		slog.Warn("rendered document parse failed", "url", target.String(), "error", err)
		return nil
	}
	return e.fromDocument(doc, resolvedURL, target.String())
}

// fromDocument combines the tag-based parse with JSON-LD structured data.
// Meta tags win; structured data fills the gaps and rides along as the
// auxiliary payload.
func (e *PinboardExtractor) fromDocument(doc *goquery.Document, resolvedURL, originalURL string) *entity.Metadata {
	pageURL := canonicalURL(doc, resolvedURL, originalURL)
	md := metadataFromDocument(doc, pageURL, entity.SourcePinboard)

	if sd := parseStructuredData(doc); sd != nil {
		if md.Title == "" {
			md.Title = sd.title()
		}
		if md.Description == "" {
			md.Description = sd.description()
		}
		if md.Thumbnail == "" {
			md.Thumbnail = absolutize(pageURL, sd.thumbnail())
		}
		if md.VideoURL == "" {
			md.VideoURL = absolutize(pageURL, sd.videoURL())
		}
		md.Extra = map[string]any(sd)
	}

	if md.Title == "" {
		md.Title = pageURL
	}
	return md
}

// canonicalURL prefers <link rel=canonical>, then the post-redirect URL,
// then the URL the user submitted.
func canonicalURL(doc *goquery.Document, resolvedURL, originalURL string) string {
	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		if href = strings.TrimSpace(href); href != "" {
			return href
		}
	}
	if resolvedURL != "" {
		return resolvedURL
	}
	return originalURL
}
