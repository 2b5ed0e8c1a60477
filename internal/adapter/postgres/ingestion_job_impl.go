package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
)

// IngestionJobRepoImpl provides a concrete implementation for the
// IngestionJobRepository interface using PostgreSQL.
type IngestionJobRepoImpl struct {
	db *pgxpool.Pool
}

// NewIngestionJobRepo creates a new instance of IngestionJobRepoImpl.
func NewIngestionJobRepo(db *pgxpool.Pool) *IngestionJobRepoImpl {
	return &IngestionJobRepoImpl{db: db}
}

// Create inserts a new job in the queued state and populates its ID.
func (r *IngestionJobRepoImpl) Create(ctx context.Context, job *entity.IngestionJob) error {
	query := `
		INSERT INTO ingestion_jobs (list_id, user_id, url, status, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	job.Status = entity.JobQueued
	return r.db.QueryRow(ctx, query,
		job.ListID,
		job.UserID,
		job.URL,
		entity.JobQueued,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

// FindByID retrieves a job by id.
func (r *IngestionJobRepoImpl) FindByID(ctx context.Context, jobID int64) (*entity.IngestionJob, error) {
	query := `
		SELECT id, list_id, user_id, url, status, source_type, metadata, item_id, error, created_at, updated_at
		FROM ingestion_jobs
		WHERE id = $1;
	`
	row := r.db.QueryRow(ctx, query, jobID)

	var (
		job          entity.IngestionJob
		status       string
		sourceType   *string
		metadataJSON []byte
		jobError     *string
	)
	err := row.Scan(
		&job.ID,
		&job.ListID,
		&job.UserID,
		&job.URL,
		&status,
		&sourceType,
		&metadataJSON,
		&job.ItemID,
		&jobError,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrJobNotFound
		}
		return nil, err
	}

	job.Status = entity.JobStatus(status)
	if sourceType != nil {
		st := entity.SourceType(*sourceType)
		job.SourceType = &st
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &job.Metadata); err != nil {
			return nil, err
		}
	}
	job.Error = deref(jobError)
	return &job, nil
}

// MarkProcessing transitions the job to the processing state.
func (r *IngestionJobRepoImpl) MarkProcessing(ctx context.Context, jobID int64) error {
	query := `
		UPDATE ingestion_jobs
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2;
	`
	_, err := r.db.Exec(ctx, query, entity.JobProcessing, jobID)
	return err
}

// MarkCompleted transitions the job to the completed state, records the
// created item, and clears any prior error.
func (r *IngestionJobRepoImpl) MarkCompleted(ctx context.Context, jobID, itemID int64, sourceType entity.SourceType, metadata map[string]any) error {
	metadataJSON, err := marshalMetadata(metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE ingestion_jobs
		SET status = $1,
		    source_type = $2,
		    metadata = $3,
		    item_id = $4,
		    error = NULL,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5;
	`
	_, err = r.db.Exec(ctx, query, entity.JobCompleted, nullable(string(sourceType)), metadataJSON, itemID, jobID)
	return err
}

// MarkFailed transitions the job to the failed state with a human-readable
// message.
func (r *IngestionJobRepoImpl) MarkFailed(ctx context.Context, jobID int64, message string) error {
	query := `
		UPDATE ingestion_jobs
		SET status = $1, error = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3;
	`
	_, err := r.db.Exec(ctx, query, entity.JobFailed, message, jobID)
	return err
}
