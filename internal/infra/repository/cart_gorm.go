package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {

	var cart model.Cart

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&cart).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		now := time.Now()
		newCart := model.Cart{
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Create(&newCart).Error; err != nil {
			//user_idのunique競合なら取り直す
			retryErr := tx.
				Where("user_id = ?", userID).
				First(&cart).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		cart = newCart
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 指定カートの明細を全削除（カート自体は残す）
func (r *CartGormRepository) Clear(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart model.Cart
		if err := tx.Where("id = ?", cartID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// カート明細を一覧取得
func (r *CartGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 同一商品は数量加算。無ければ追加時点のスナップショットで新規作成
func (r *CartGormRepository) UpsertByCartAndItem(ctx context.Context, cartID int64, itemID int64, addQty int64, nameSnapshot string, priceSnapshot decimal.Decimal) error {

	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND item_id = ?", cartID, itemID).
			First(&line).Error

		if err == nil {
			// 既存ありだったら数量を増やす（スナップショットは初回のまま）
			newQty := line.Quantity + addQty

			res := tx.Model(&model.CartItem{}).
				Where("id = ?", line.ID).
				Update("quantity", newQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		newLine := model.CartItem{
			CartID:            cartID,
			ItemID:            itemID,
			ItemNameSnapshot:  nameSnapshot,
			UnitPriceSnapshot: priceSnapshot,
			Quantity:          addQty,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := tx.Create(&newLine).Error; err != nil {
			return err
		}

		return nil
	})
}

// item_id指定で明細を削除
func (r *CartGormRepository) DeleteByCartAndItem(ctx context.Context, cartID int64, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND item_id = ?", cartID, itemID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
