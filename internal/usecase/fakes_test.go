package usecase

import (
	"context"
	"time"

	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
)

type fakeListRepo struct {
	lists map[int64]*entity.List
}

func newFakeListRepo(lists ...*entity.List) *fakeListRepo {
	repo := &fakeListRepo{lists: make(map[int64]*entity.List)}
	for _, l := range lists {
		repo.lists[l.ID] = l
	}
	return repo
}

func (r *fakeListRepo) FindForUser(_ context.Context, listID int64, userID string) (*entity.List, error) {
	list, ok := r.lists[listID]
	if !ok || list.UserID != userID {
		return nil, repository.ErrListNotFound
	}
	return list, nil
}

type fakeItemRepo struct {
	items     []*entity.Item
	nextID    int64
	createErr error
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	item.ID = r.nextID
	stored := *item
	r.items = append(r.items, &stored)
	return nil
}

func (r *fakeItemRepo) NextPosition(_ context.Context, listID int64) (int, error) {
	max := -1
	for _, item := range r.items {
		if item.ListID == listID && item.Position > max {
			max = item.Position
		}
	}
	return max + 1, nil
}

func (r *fakeItemRepo) ListByList(_ context.Context, listID int64) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.items {
		if item.ListID == listID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindForUser(_ context.Context, itemID int64, _ string) (*entity.Item, error) {
	for _, item := range r.items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, repository.ErrItemNotFound
}

func (r *fakeItemRepo) Delete(_ context.Context, itemID int64) error {
	for i, item := range r.items {
		if item.ID == itemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrItemNotFound
}

type fakeJobRepo struct {
	jobs   map[int64]*entity.IngestionJob
	nextID int64

	// statusLog records every transition in order for assertions about the
	// state machine.
	statusLog []entity.JobStatus
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[int64]*entity.IngestionJob)}
}

func (r *fakeJobRepo) Create(_ context.Context, job *entity.IngestionJob) error {
	r.nextID++
	job.ID = r.nextID
	job.Status = entity.JobQueued
	stored := *job
	r.jobs[job.ID] = &stored
	r.statusLog = append(r.statusLog, entity.JobQueued)
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, jobID int64) (*entity.IngestionJob, error) {
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) MarkProcessing(_ context.Context, jobID int64) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repository.ErrJobNotFound
	}
	job.Status = entity.JobProcessing
	r.statusLog = append(r.statusLog, entity.JobProcessing)
	return nil
}

func (r *fakeJobRepo) MarkCompleted(_ context.Context, jobID, itemID int64, sourceType entity.SourceType, metadata map[string]any) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repository.ErrJobNotFound
	}
	job.Status = entity.JobCompleted
	job.ItemID = &itemID
	job.SourceType = &sourceType
	job.Metadata = metadata
	job.Error = ""
	r.statusLog = append(r.statusLog, entity.JobCompleted)
	return nil
}

func (r *fakeJobRepo) MarkFailed(_ context.Context, jobID int64, message string) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repository.ErrJobNotFound
	}
	job.Status = entity.JobFailed
	job.Error = message
	r.statusLog = append(r.statusLog, entity.JobFailed)
	return nil
}

type fakeJobQueue struct {
	ids     []int64
	pushErr error
}

func (q *fakeJobQueue) Push(_ context.Context, jobID int64) error {
	if q.pushErr != nil {
		return q.pushErr
	}
	q.ids = append(q.ids, jobID)
	return nil
}

func (q *fakeJobQueue) Pop(context.Context) (int64, error) {
	if len(q.ids) == 0 {
		return 0, repository.ErrQueueEmpty
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, nil
}

func (q *fakeJobQueue) Size(context.Context) (int64, error) {
	return int64(len(q.ids)), nil
}

// fakeExtractor honors the never-fails contract: it always returns a record.
type fakeExtractor struct {
	md    *entity.Metadata
	calls int

	// onExtract, when set, runs before each extraction. Tests use it to
	// observe state mid-processing.
	onExtract func()
}

func (e *fakeExtractor) Extract(_ context.Context, rawURL string) *entity.Metadata {
	e.calls++
	if e.onExtract != nil {
		e.onExtract()
	}
	if e.md != nil {
		copied := *e.md
		if copied.URL == "" {
			copied.URL = rawURL
		}
		return &copied
	}
	return &entity.Metadata{URL: rawURL, Title: rawURL, SourceType: entity.SourceWebsite}
}

type fakeMetadataCache struct {
	entries map[string]*entity.Metadata
	getErr  error
	sets    int
}

func newFakeMetadataCache() *fakeMetadataCache {
	return &fakeMetadataCache{entries: make(map[string]*entity.Metadata)}
}

func (c *fakeMetadataCache) Get(_ context.Context, rawURL string) (*entity.Metadata, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	md, ok := c.entries[rawURL]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return md, nil
}

func (c *fakeMetadataCache) Set(_ context.Context, rawURL string, md *entity.Metadata, _ time.Duration) error {
	c.sets++
	c.entries[rawURL] = md
	return nil
}
