package usecase

import (
	"context"
	"fmt"

	"github.com/imcharliesparks/listmaker/internal/entity"
	"github.com/imcharliesparks/listmaker/internal/repository"
)

// ItemManager defines the interface for the synchronous item paths. AddItem
// always succeeds with at least a URL-titled item when extraction finds
// nothing better; an extraction failure is never user-visible here.
type ItemManager interface {
	AddItem(ctx context.Context, userID string, listID int64, rawURL string) (*entity.Item, error)
	ListItems(ctx context.Context, userID string, listID int64) ([]*entity.Item, error)
	GetItem(ctx context.Context, userID string, itemID int64) (*entity.Item, error)
	DeleteItem(ctx context.Context, userID string, itemID int64) error
}

type itemUseCase struct {
	listRepo  repository.ListRepository
	itemRepo  repository.ItemRepository
	extractor MetadataExtractor
}

// NewItemManager creates a new ItemManager use case.
func NewItemManager(
	listRepo repository.ListRepository,
	itemRepo repository.ItemRepository,
	extractor MetadataExtractor,
) ItemManager {
	return &itemUseCase{
		listRepo:  listRepo,
		itemRepo:  itemRepo,
		extractor: extractor,
	}
}

func (uc *itemUseCase) AddItem(ctx context.Context, userID string, listID int64, rawURL string) (*entity.Item, error) {
	if _, err := uc.listRepo.FindForUser(ctx, listID, userID); err != nil {
		return nil, err
	}

	md := uc.extractor.Extract(ctx, rawURL)

	item, err := appendItem(ctx, uc.itemRepo, listID, md)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// appendItem persists a preview as a new item at the end of the list.
// Shared with the background ingestion path so both honor the same position
// assignment rule.
func appendItem(ctx context.Context, itemRepo repository.ItemRepository, listID int64, md *entity.Metadata) (*entity.Item, error) {
	position, err := itemRepo.NextPosition(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("next position for list %d: %w", listID, err)
	}

	item := &entity.Item{
		ListID:       listID,
		URL:          md.URL,
		Title:        md.Title,
		Description:  md.Description,
		ThumbnailURL: md.Thumbnail,
		VideoURL:     md.VideoURL,
		SourceType:   md.SourceType,
		Metadata:     md.Extra,
		Position:     position,
	}
	if err := itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item in list %d: %w", listID, err)
	}
	return item, nil
}

func (uc *itemUseCase) ListItems(ctx context.Context, userID string, listID int64) ([]*entity.Item, error) {
	if _, err := uc.listRepo.FindForUser(ctx, listID, userID); err != nil {
		return nil, err
	}
	return uc.itemRepo.ListByList(ctx, listID)
}

func (uc *itemUseCase) GetItem(ctx context.Context, userID string, itemID int64) (*entity.Item, error) {
	return uc.itemRepo.FindForUser(ctx, itemID, userID)
}

func (uc *itemUseCase) DeleteItem(ctx context.Context, userID string, itemID int64) error {
	if _, err := uc.itemRepo.FindForUser(ctx, itemID, userID); err != nil {
		return err
	}
	return uc.itemRepo.Delete(ctx, itemID)
}
