package metadata

import (
	"context"
	"log/slog"
	"time"

	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
	"github.com/imcharliesparks/listmaker/pkg/metrics"
)

// Config carries the pipeline tunables.
type Config struct {
	// FetchTimeout bounds every static fetch and DNS lookup.
	FetchTimeout time.Duration
	// MaxRedirects caps the redirect chain a fetch may follow.
	MaxRedirects int
}

// Extractor ties validation, classification, and per-source extraction into
// a single call with uniform fallback behavior. It is safe for concurrent
// use; each extraction owns its Metadata exclusively.
type Extractor struct {
	validator URLValidator
	generic   *OpenGraphExtractor
	video     *VideoExtractor
	pinboard  *PinboardExtractor
}

// NewExtractor wires the full pipeline. The renderer backs the pinboard
// extractor's headless fallback.
func NewExtractor(renderer repository.PageRenderer, cfg Config) *Extractor {
	validator := NewValidator(cfg.FetchTimeout)
	fetcher := NewFetcher(validator, cfg.FetchTimeout, cfg.MaxRedirects)
	generic := NewOpenGraphExtractor(fetcher)
	return &Extractor{
		validator: validator,
		generic:   generic,
		video:     NewVideoExtractor(fetcher, generic),
		pinboard:  NewPinboardExtractor(fetcher, renderer),
	}
}

// Extract produces a preview for rawURL. It never returns an error: any
// validation, network, or parse failure degrades to a minimal record so a
// failed preview cannot block the user's save.
func (e *Extractor) Extract(ctx context.Context, rawURL string) *entity.Metadata {
	md, err := e.extract(ctx, rawURL)
	if err != nil {
		slog.Warn("metadata extraction failed, using fallback",
			"url", rawURL, "error", err)
		// Classification is recomputed against the raw string because the
		// safe, resolved form may not exist at this point.
		md = &entity.Metadata{
			URL:        rawURL,
			Title:      rawURL,
			SourceType: Classify(rawURL),
		}
	}
	if md.URL == "" {
		md.URL = rawURL
	}
	if md.Title == "" {
		md.Title = md.URL
	}
	return md
}

func (e *Extractor) extract(ctx context.Context, rawURL string) (*entity.Metadata, error) {
	safe, err := e.validator.EnsureSafe(ctx, rawURL)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues(string(Classify(rawURL)), "rejected").Inc()
		return nil, err
	}

	source := Classify(safe.String())
	start := time.Now()

	var md *entity.Metadata
	switch source {
	case entity.SourceVideo:
		md, err = e.video.Extract(ctx, safe)
	case entity.SourcePinboard:
		md, err = e.pinboard.Extract(ctx, safe)
	default:
		md, err = e.generic.Extract(ctx, safe, source)
	}

	metrics.ExtractionDuration.WithLabelValues(string(source)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues(string(source), "failure").Inc()
		return nil, err
	}
	metrics.ExtractionsTotal.WithLabelValues(string(source), "success").Inc()
	return md, nil
}
