package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
)

// ListRepoImpl provides a concrete implementation for the ListRepository
// interface using PostgreSQL.
type ListRepoImpl struct {
	db *pgxpool.Pool
}

// NewListRepo creates a new instance of ListRepoImpl.
func NewListRepo(db *pgxpool.Pool) *ListRepoImpl {
	return &ListRepoImpl{db: db}
}

// FindForUser retrieves a list by id scoped to its owner. A list belonging
// to another user surfaces as repository.ErrListNotFound.
func (r *ListRepoImpl) FindForUser(ctx context.Context, listID int64, userID string) (*entity.List, error) {
	query := `
		SELECT id, user_id, title, description, is_public, cover_image, created_at, updated_at
		FROM lists
		WHERE id = $1 AND user_id = $2;
	`
	row := r.db.QueryRow(ctx, query, listID, userID)

	var list entity.List
	err := row.Scan(
		&list.ID,
		&list.UserID,
		&list.Title,
		&list.Description,
		&list.IsPublic,
		&list.CoverImage,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}
