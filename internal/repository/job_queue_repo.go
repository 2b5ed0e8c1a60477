package repository

import (
	"context"
	"errors"
)

// ErrQueueEmpty is returned by Pop when no job is waiting.
var ErrQueueEmpty = errors.New("job queue is empty")

// JobQueueRepository defines the interface for the FIFO queue of ingestion
// job ids awaiting processing.
type JobQueueRepository interface {
	// Push adds a job id to the end of the queue.
	Push(ctx context.Context, jobID int64) error
	// Pop removes and returns a job id from the front of the queue.
	// Returns ErrQueueEmpty when nothing is waiting.
	Pop(ctx context.Context) (int64, error)
	// Size returns the current number of queued job ids.
	Size(ctx context.Context) (int64, error)
}
