package repository

import (
	"context"

	"gorm.io/gorm"

	"canteen-system/internal/database/models"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *ItemRepository) Update(ctx context.Context, id int64, name string, amount int64) (*models.Item, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = name
	item.Amount = amount
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// SetCompletedDate marks the item fulfilled for the given date; nil clears
// the mark (the item summary screen toggles between the two).
func (r *ItemRepository) SetCompletedDate(ctx context.Context, id int64, date *string) error {
	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).
		Update("completed_date", date)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
