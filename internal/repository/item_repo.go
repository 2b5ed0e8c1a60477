package repository

import (
	"context"
	"errors"

	"github.com/imcharliesparks/listmaker/internal/entity"
)

// ErrItemNotFound is returned when an item does not exist or belongs to a
// list the requesting user does not own.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository defines the interface for storing and retrieving saved
// items.
type ItemRepository interface {
	// Create inserts a new item and populates its ID.
	Create(ctx context.Context, item *entity.Item) error
	// NextPosition returns the position a newly appended item should take
	// in the list: max(existing positions)+1, or 0 for an empty list.
	NextPosition(ctx context.Context, listID int64) (int, error)
	// ListByList retrieves all items of a list ordered by position.
	ListByList(ctx context.Context, listID int64) ([]*entity.Item, error)
	// FindForUser retrieves an item by id, scoped to the owner of its list.
	FindForUser(ctx context.Context, itemID int64, userID string) (*entity.Item, error)
	// Delete removes an item.
	Delete(ctx context.Context, itemID int64) error
}
