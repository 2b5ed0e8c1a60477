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

// ItemRepoImpl provides a concrete implementation for the ItemRepository
// interface using PostgreSQL.
type ItemRepoImpl struct {
	db *pgxpool.Pool
}

// NewItemRepo creates a new instance of ItemRepoImpl.
func NewItemRepo(db *pgxpool.Pool) *ItemRepoImpl {
	return &ItemRepoImpl{db: db}
}

// Create inserts a new item and populates its ID and timestamps.
func (r *ItemRepoImpl) Create(ctx context.Context, item *entity.Item) error {
	metadataJSON, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO items (list_id, url, title, description, thumbnail_url, video_url, source_type, metadata, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at;
	`
	return r.db.QueryRow(ctx, query,
		item.ListID,
		item.URL,
		nullable(item.Title),
		nullable(item.Description),
		nullable(item.ThumbnailURL),
		nullable(item.VideoURL),
		nullable(string(item.SourceType)),
		metadataJSON,
		item.Position,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// NextPosition returns max(position)+1 for the list, or 0 when it is empty.
func (r *ItemRepoImpl) NextPosition(ctx context.Context, listID int64) (int, error) {
	query := `SELECT COALESCE(MAX(position), -1) + 1 FROM items WHERE list_id = $1;`

	var next int
	if err := r.db.QueryRow(ctx, query, listID).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// ListByList retrieves all items of a list in rendering order.
func (r *ItemRepoImpl) ListByList(ctx context.Context, listID int64) ([]*entity.Item, error) {
	query := `
		SELECT id, list_id, url, title, description, thumbnail_url, video_url, source_type, metadata, position, created_at, updated_at
		FROM items
		WHERE list_id = $1
		ORDER BY position ASC;
	`
	rows, err := r.db.Query(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindForUser retrieves an item by id, scoped to the owner of its list.
func (r *ItemRepoImpl) FindForUser(ctx context.Context, itemID int64, userID string) (*entity.Item, error) {
	query := `
		SELECT i.id, i.list_id, i.url, i.title, i.description, i.thumbnail_url, i.video_url, i.source_type, i.metadata, i.position, i.created_at, i.updated_at
		FROM items i
		JOIN lists l ON i.list_id = l.id
		WHERE i.id = $1 AND l.user_id = $2;
	`
	item, err := scanItem(r.db.QueryRow(ctx, query, itemID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// Delete removes an item.
func (r *ItemRepoImpl) Delete(ctx context.Context, itemID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1;`, itemID)
	return err
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		item         entity.Item
		title        *string
		description  *string
		thumbnailURL *string
		videoURL     *string
		sourceType   *string
		metadataJSON []byte
	)
	err := row.Scan(
		&item.ID,
		&item.ListID,
		&item.URL,
		&title,
		&description,
		&thumbnailURL,
		&videoURL,
		&sourceType,
		&metadataJSON,
		&item.Position,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Title = deref(title)
	item.Description = deref(description)
	item.ThumbnailURL = deref(thumbnailURL)
	item.VideoURL = deref(videoURL)
	item.SourceType = entity.SourceType(deref(sourceType))
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &item.Metadata); err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// marshalMetadata keeps the metadata column NULL rather than storing an
// empty JSON object.
func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	return json.Marshal(metadata)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
