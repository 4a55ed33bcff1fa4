package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫の現在値を設定
func (r *InventoryGormRepository) SetStock(ctx context.Context, itemID int64, newStock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", itemID).
		Update("stock", newStock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫が足りるときだけ減らす
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, itemID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ? AND stock >= ?", itemID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
