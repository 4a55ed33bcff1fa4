package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一商品は数量加算。無ければ追加時点の名前・価格のスナップショットで新規作成
	UpsertByCartAndItem(ctx context.Context, cartID int64, itemID int64, addQty int64, nameSnapshot string, priceSnapshot decimal.Decimal) error
	DeleteByCartAndItem(ctx context.Context, cartID int64, itemID int64) error
}
