package entity

import "time"

// JobStatus is the lifecycle state of an ingestion job.
// Transitions: queued -> processing -> completed | failed.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// IngestionJob mirrors the `ingestion_jobs` PostgreSQL table schema.
type IngestionJob struct {
	ID         int64
	ListID     int64
	UserID     string
	URL        string
	Status     JobStatus
	SourceType *SourceType
	Metadata   map[string]any
	ItemID     *int64
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
