package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

// 名前の部分一致とカテゴリで絞り込み
func (r *ItemGormRepository) List(ctx context.Context, q repo.ItemListQuery) ([]model.Item, error) {
	var items []model.Item

	tx := r.db.WithContext(ctx).Model(&model.Item{})

	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("name ILIKE ?", like)
	}

	if q.Category != "" && q.Category != "all" {
		tx = tx.Where("category = ?", q.Category)
	}

	if err := tx.Order("id asc").Find(&items).Error; err != nil {
		return []model.Item{}, err
	}

	return items, nil
}

// IDで商品を取得
func (r *ItemGormRepository) FindByID(ctx context.Context, id int64) (model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (r *ItemGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// 商品の作成
func (r *ItemGormRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// 商品の更新
func (r *ItemGormRepository) Update(ctx context.Context, item model.Item) error {
	res := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"stock":       item.Stock,
		"category":    item.Category,
		"image_ref":   item.ImageRef,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ItemGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
