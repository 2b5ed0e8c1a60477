package repository

import (
	"context"
	"errors"

	"github.com/imcharliesparks/listmaker/internal/entity"
)

// ErrJobNotFound is returned when no ingestion job exists for the given id.
var ErrJobNotFound = errors.New("ingestion job not found")

// IngestionJobRepository defines the interface for the persisted ingestion
// job records. The processor only reads jobs and advances their status; it
// never deletes them.
type IngestionJobRepository interface {
	// Create inserts a new job in the queued state and populates its ID.
	Create(ctx context.Context, job *entity.IngestionJob) error
	// FindByID retrieves a job by id.
	FindByID(ctx context.Context, jobID int64) (*entity.IngestionJob, error)
	// MarkProcessing transitions the job to the processing state.
	MarkProcessing(ctx context.Context, jobID int64) error
	// MarkCompleted transitions the job to the completed state, records the
	// created item, and clears any prior error.
	MarkCompleted(ctx context.Context, jobID, itemID int64, sourceType entity.SourceType, metadata map[string]any) error
	// MarkFailed transitions the job to the failed state with a
	// human-readable error message.
	MarkFailed(ctx context.Context, jobID int64, message string) error
}
