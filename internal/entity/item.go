package entity

import "time"

// Item mirrors the `items` PostgreSQL table schema. Position is the
// definitive rendering order within a list: new items are appended at
// max(position)+1, or 0 for an empty list.
type Item struct {
	ID           int64
	ListID       int64
	URL          string
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	SourceType   SourceType
	Metadata     map[string]any // stored as JSONB
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
