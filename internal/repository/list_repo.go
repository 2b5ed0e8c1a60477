package repository

import (
	"context"
	"errors"

	"github.com/imcharliesparks/listmaker/internal/entity"
)

// ErrListNotFound is returned when a list does not exist or is not owned by
// the requesting user. The two cases are deliberately indistinguishable.
var ErrListNotFound = errors.New("list not found")

// ListRepository defines the interface for reading list records.
type ListRepository interface {
	// FindForUser retrieves a list by id, scoped to its owner.
	FindForUser(ctx context.Context, listID int64, userID string) (*entity.List, error)
}
