package response

import (
	"time"

	"github.com/imcharliesparks/listmaker/internal/entity"
)

// ItemResponse is the wire shape of a saved item.
type ItemResponse struct {
	ID          int64          `json:"id"`
	ListID      int64          `json:"listId"`
	URL         string         `json:"url"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	SourceType  string         `json:"sourceType,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Position    int            `json:"position"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// FromItem maps an item entity to its wire shape.
func FromItem(item *entity.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		ListID:      item.ListID,
		URL:         item.URL,
		Title:       item.Title,
		Description: item.Description,
		Thumbnail:   item.ThumbnailURL,
		VideoURL:    item.VideoURL,
		SourceType:  string(item.SourceType),
		Metadata:    item.Metadata,
		Position:    item.Position,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// FromItems maps a slice of item entities, never returning nil so the JSON
// field serializes as [] rather than null.
func FromItems(items []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromItem(item))
	}
	return out
}

// IngestionJobResponse is the wire shape of an ingestion job poll.
type IngestionJobResponse struct {
	JobID  int64  `json:"jobId"`
	Status string `json:"status"`
	ItemID *int64 `json:"itemId,omitempty"`
	Error  string `json:"error,omitempty"`
}

// FromJob maps a job entity to its wire shape.
func FromJob(job *entity.IngestionJob) IngestionJobResponse {
	return IngestionJobResponse{
		JobID:  job.ID,
		Status: string(job.Status),
		ItemID: job.ItemID,
		Error:  job.Error,
	}
}
