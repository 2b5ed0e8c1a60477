package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
	"github.com/imcharliesparks/listmaker/pkg/metrics"
)

// ErrMissingMedia is the domain policy failure for background ingestion:
// extraction succeeded structurally but produced neither a thumbnail nor a
// video link. Its text is recorded verbatim on the job.
var ErrMissingMedia = errors.New("missing required media (image or video)")

// IngestionManager defines the interface for creating and polling ingestion
// jobs.
type IngestionManager interface {
	// CreateJob persists a queued job for the URL and enqueues it for the
	// background workers.
	CreateJob(ctx context.Context, userID string, listID int64, rawURL string) (*entity.IngestionJob, error)
	// GetJob retrieves a job by id, scoped to its owner.
	GetJob(ctx context.Context, userID string, jobID int64) (*entity.IngestionJob, error)
}

// IngestionProcessor defines the interface for the background side of
// ingestion.
type IngestionProcessor interface {
	// ProcessJob runs a queued job to a terminal state. Calling it on a job
	// that already left the queued state is a no-op.
	ProcessJob(ctx context.Context, jobID int64) error
	// ProcessNext pops one job id off the queue and processes it. The bool
	// reports whether a job was waiting.
	ProcessNext(ctx context.Context) (bool, error)
}

type ingestionUseCase struct {
	jobRepo   repository.IngestionJobRepository
	listRepo  repository.ListRepository
	itemRepo  repository.ItemRepository
	queue     repository.JobQueueRepository
	extractor MetadataExtractor
}

// NewIngestionManager creates the job submission/polling use case.
func NewIngestionManager(
	jobRepo repository.IngestionJobRepository,
	listRepo repository.ListRepository,
	queue repository.JobQueueRepository,
) IngestionManager {
	return &ingestionUseCase{
		jobRepo:  jobRepo,
		listRepo: listRepo,
		queue:    queue,
	}
}

// NewIngestionProcessor creates the background job processor.
func NewIngestionProcessor(
	jobRepo repository.IngestionJobRepository,
	listRepo repository.ListRepository,
	itemRepo repository.ItemRepository,
	queue repository.JobQueueRepository,
	extractor MetadataExtractor,
) IngestionProcessor {
	return &ingestionUseCase{
		jobRepo:   jobRepo,
		listRepo:  listRepo,
		itemRepo:  itemRepo,
		queue:     queue,
		extractor: extractor,
	}
}

func (uc *ingestionUseCase) CreateJob(ctx context.Context, userID string, listID int64, rawURL string) (*entity.IngestionJob, error) {
	if _, err := uc.listRepo.FindForUser(ctx, listID, userID); err != nil {
		return nil, err
	}

	job := &entity.IngestionJob{
		ListID: listID,
		UserID: userID,
		URL:    rawURL,
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create ingestion job: %w", err)
	}

	if err := uc.queue.Push(ctx, job.ID); err != nil {
		// The row exists but nothing will pick it up; fail the job so a
		// poll does not show it queued forever.
		slog.Error("Failed to enqueue ingestion job", "job_id", job.ID, "error", err)
		if markErr := uc.jobRepo.MarkFailed(ctx, job.ID, "could not enqueue job"); markErr != nil {
			slog.Error("Failed to mark unenqueued job failed", "job_id", job.ID, "error", markErr)
		}
		return nil, fmt.Errorf("enqueue ingestion job %d: %w", job.ID, err)
	}
	return job, nil
}

func (uc *ingestionUseCase) GetJob(ctx context.Context, userID string, jobID int64) (*entity.IngestionJob, error) {
	job, err := uc.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, repository.ErrJobNotFound
	}
	return job, nil
}

// ProcessNext drains a single job from the queue.
func (uc *ingestionUseCase) ProcessNext(ctx context.Context) (bool, error) {
	jobID, err := uc.queue.Pop(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrQueueEmpty) {
			return false, nil
		}
		return false, fmt.Errorf("pop ingestion queue: %w", err)
	}
	return true, uc.ProcessJob(ctx, jobID)
}

// ProcessJob runs a queued job to a terminal state. A job that already left
// the queued state is skipped, which makes duplicate queue deliveries and
// double triggers harmless.
func (uc *ingestionUseCase) ProcessJob(ctx context.Context, jobID int64) error {
	job, err := uc.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			slog.Warn("Ingestion job vanished before processing", "job_id", jobID)
			return nil
		}
		return fmt.Errorf("load ingestion job %d: %w", jobID, err)
	}

	if job.Status != entity.JobQueued {
		return nil
	}

	// Mark processing before any network work so concurrent status polls
	// observe progress.
	if err := uc.jobRepo.MarkProcessing(ctx, job.ID); err != nil {
		return fmt.Errorf("mark job %d processing: %w", job.ID, err)
	}

	if runErr := uc.runJob(ctx, job); runErr != nil {
		slog.Warn("Ingestion job failed", "job_id", job.ID, "url", job.URL, "error", runErr)
		metrics.IngestionJobsTotal.WithLabelValues(string(entity.JobFailed)).Inc()
		if err := uc.jobRepo.MarkFailed(ctx, job.ID, runErr.Error()); err != nil {
			return fmt.Errorf("mark job %d failed: %w", job.ID, err)
		}
		return nil
	}

	metrics.IngestionJobsTotal.WithLabelValues(string(entity.JobCompleted)).Inc()
	return nil
}

// runJob performs the extraction and persistence for a job already marked
// processing. Any returned error becomes the job's recorded failure.
func (uc *ingestionUseCase) runJob(ctx context.Context, job *entity.IngestionJob) error {
	if _, err := uc.listRepo.FindForUser(ctx, job.ListID, job.UserID); err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return err
		}
		return fmt.Errorf("check list %d: %w", job.ListID, err)
	}

	md := uc.extractor.Extract(ctx, job.URL)

	// Background ingestion has a stricter success criterion than the
	// synchronous path: a preview without any media is not worth saving.
	if !md.HasMedia() {
		return ErrMissingMedia
	}

	item, err := appendItem(ctx, uc.itemRepo, job.ListID, md)
	if err != nil {
		return err
	}

	if err := uc.jobRepo.MarkCompleted(ctx, job.ID, item.ID, md.SourceType, md.Extra); err != nil {
		return fmt.Errorf("mark job %d completed: %w", job.ID, err)
	}

	slog.Info("Ingestion job completed", "job_id", job.ID, "item_id", item.ID, "source", md.SourceType)
	return nil
}
