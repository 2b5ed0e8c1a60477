package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/imcharliesparks/listmaker/internal/entity"
)

const (
	defaultOEmbedEndpoint = "https://www.youtube.com/oembed"
	watchURLFormat        = "https://www.youtube.com/watch?v=%s"
)

// videoIDPatterns matches the watch, short, and embed URL forms.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)youtube\.com/watch\?(?:[^#\s]*&)?v=([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`(?i)youtu\.be/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`(?i)youtube\.com/embed/([A-Za-z0-9_-]+)`),
}

// ExtractVideoID pulls the platform video identifier out of a URL, or ""
// when none of the known URL forms match.
func ExtractVideoID(rawURL string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}

// VideoExtractor resolves video-platform URLs through the platform's public
// oEmbed endpoint. oEmbed failures degrade to the generic extractor rather
// than failing the extraction outright.
type VideoExtractor struct {
	fetcher  *Fetcher
	generic  *OpenGraphExtractor
	endpoint string
}

func NewVideoExtractor(fetcher *Fetcher, generic *OpenGraphExtractor) *VideoExtractor {
	return &VideoExtractor{
		fetcher:  fetcher,
		generic:  generic,
		endpoint: defaultOEmbedEndpoint,
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Extract builds a preview for a video-platform URL.
func (e *VideoExtractor) Extract(ctx context.Context, target *SafeURL) (*entity.Metadata, error) {
	videoID := ExtractVideoID(target.String())
	if videoID == "" {
		return &entity.Metadata{
			URL:        target.String(),
			SourceType: entity.SourceVideo,
		}, nil
	}

	md, err := e.fromOEmbed(ctx, target.String(), videoID)
	if err != nil {
		slog.Debug("oembed lookup failed, falling back to generic extraction",
			"url", target.String(), "error", err)
		return e.generic.Extract(ctx, target, entity.SourceVideo)
	}
	return md, nil
}

func (e *VideoExtractor) fromOEmbed(ctx context.Context, originalURL, videoID string) (*entity.Metadata, error) {
	watchURL := fmt.Sprintf(watchURLFormat, videoID)
	oembedURL := fmt.Sprintf("%s?url=%s&format=json", e.endpoint, url.QueryEscape(watchURL))

	body, _, err := e.fetcher.GetURL(ctx, oembedURL)
	if err != nil {
		return nil, err
	}

	var resp oembedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode oembed response: %v", ErrFetch, err)
	}

	return &entity.Metadata{
		URL:         originalURL,
		Title:       resp.Title,
		Description: resp.AuthorName,
		Thumbnail:   resp.ThumbnailURL,
		VideoURL:    watchURL,
		SourceType:  entity.SourceVideo,
		Extra: map[string]any{
			"videoId":     videoID,
			"channelName": resp.AuthorName,
		},
	}, nil
}
