package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return o, true, nil
}

func (r *OrderGormRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// 売上合計（ステータスは問わない）
func (r *OrderGormRepository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}

func (r *OrderGormRepository) ListCreatedBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("id asc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}
