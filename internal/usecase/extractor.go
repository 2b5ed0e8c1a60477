package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
)

// MetadataExtractor is the slice of the extraction pipeline the use cases
// depend on. The contract matters: Extract never fails, it degrades to a
// minimal record instead.
type MetadataExtractor interface {
	Extract(ctx context.Context, rawURL string) *entity.Metadata
}

// cachedExtractor consults the preview cache before running the pipeline.
// The cache is best-effort: any cache error is treated as a miss.
type cachedExtractor struct {
	inner MetadataExtractor
	cache repository.MetadataCacheRepository
	ttl   time.Duration
}

// NewCachedExtractor wraps an extractor with the Redis preview cache.
func NewCachedExtractor(inner MetadataExtractor, cache repository.MetadataCacheRepository, ttl time.Duration) MetadataExtractor {
	return &cachedExtractor{inner: inner, cache: cache, ttl: ttl}
}

func (c *cachedExtractor) Extract(ctx context.Context, rawURL string) *entity.Metadata {
	md, err := c.cache.Get(ctx, rawURL)
	if err == nil {
		return md
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		slog.Debug("metadata cache lookup failed", "url", rawURL, "error", err)
	}

	md = c.inner.Extract(ctx, rawURL)

	// Pure fallback records usually mean a transient failure; caching them
	// would pin the failure for the TTL.
	if isFallback(md) {
		return md
	}
	if err := c.cache.Set(ctx, rawURL, md, c.ttl); err != nil {
		slog.Debug("metadata cache store failed", "url", rawURL, "error", err)
	}
	return md
}

func isFallback(md *entity.Metadata) bool {
	return !md.HasMedia() && md.Description == "" && md.Title == md.URL
}
