package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/imcharliesparks/listmaker/internal/repository"
)

const ingestionQueueKey = "ingestion:jobs"

// JobQueueRepoImpl provides a concrete implementation for the
// JobQueueRepository interface using Redis lists.
type JobQueueRepoImpl struct {
	client *redis.Client
}

// NewJobQueueRepo creates a new instance of JobQueueRepoImpl.
func NewJobQueueRepo(client *redis.Client) *JobQueueRepoImpl {
	return &JobQueueRepoImpl{client: client}
}

// Push adds a job id to the left side of the Redis list (acting as a queue).
func (r *JobQueueRepoImpl) Push(ctx context.Context, jobID int64) error {
	return r.client.LPush(ctx, ingestionQueueKey, jobID).Err()
}

// Pop removes and returns a job id from the right side of the Redis list.
// Returns repository.ErrQueueEmpty when no job is waiting.
func (r *JobQueueRepoImpl) Pop(ctx context.Context) (int64, error) {
	val, err := r.client.RPop(ctx, ingestionQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, repository.ErrQueueEmpty
		}
		return 0, err
	}
	jobID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return jobID, nil
}

// Size returns the current number of queued job ids.
func (r *JobQueueRepoImpl) Size(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, ingestionQueueKey).Result()
}
