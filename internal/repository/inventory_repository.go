package repository

import "context"

type InventoryRepository interface {
	// 在庫の現在値を設定（管理者の再入荷）
	SetStock(ctx context.Context, itemID int64, newStock int64) error

	// 在庫が足りるときだけ1文で減算（チェックと適用を分けない）
	DecreaseStockIfEnough(ctx context.Context, itemID int64, qty int64) (bool, error)
}
