package entity

import "time"

// List mirrors the `lists` PostgreSQL table schema.
type List struct {
	ID          int64
	UserID      string
	Title       string
	Description *string
	IsPublic    bool
	CoverImage  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
