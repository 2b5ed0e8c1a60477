package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
	"github.com/imcharliesparks/listmaker/pkg/utils"
)

const metadataCachePrefix = "metadata:"

// MetadataCacheRepoImpl provides a concrete implementation for the
// MetadataCacheRepository interface using Redis.
type MetadataCacheRepoImpl struct {
	client *redis.Client
}

// NewMetadataCacheRepo creates a new instance of MetadataCacheRepoImpl.
func NewMetadataCacheRepo(client *redis.Client) *MetadataCacheRepoImpl {
	return &MetadataCacheRepoImpl{client: client}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *MetadataCacheRepoImpl) generateKey(rawURL string) string {
	return fmt.Sprintf("%s%s", metadataCachePrefix, utils.HashURL(rawURL))
}

// Get retrieves the cached preview for a URL.
func (r *MetadataCacheRepoImpl) Get(ctx context.Context, rawURL string) (*entity.Metadata, error) {
	val, err := r.client.Get(ctx, r.generateKey(rawURL)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, err
	}

	var md entity.Metadata
	if err := json.Unmarshal(val, &md); err != nil {
		return nil, err
	}
	return &md, nil
}

// Set stores a preview for a URL with the given expiry.
func (r *MetadataCacheRepoImpl) Set(ctx context.Context, rawURL string, md *entity.Metadata, expiry time.Duration) error {
	val, err := json.Marshal(md)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.generateKey(rawURL), val, expiry).Err()
}
