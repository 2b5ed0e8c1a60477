package repository

import (
	"context"
	"errors"
	"time"

	"github.com/imcharliesparks/listmaker/internal/entity"
)

// ErrCacheMiss is returned by Get when no preview is cached for the URL.
var ErrCacheMiss = errors.New("metadata cache miss")

// MetadataCacheRepository defines the interface for the short-lived cache of
// extracted previews. The cache is best-effort: callers treat every error as
// a miss and never fail a request on it.
type MetadataCacheRepository interface {
	// Get retrieves the cached preview for a URL.
	Get(ctx context.Context, rawURL string) (*entity.Metadata, error)
	// Set stores a preview for a URL with the given expiry.
	Set(ctx context.Context, rawURL string, md *entity.Metadata, expiry time.Duration) error
}
