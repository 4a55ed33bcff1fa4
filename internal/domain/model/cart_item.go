package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細
// 追加時点の商品名・価格を必ず保存（チェックアウトまで再同期しない）。
// 同一carts内でitem_idは一意。
type CartItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID            int64           `gorm:"not null;index:idx_cart_item,unique" json:"cart_id"`
	ItemID            int64           `gorm:"not null;index:idx_cart_item,unique" json:"item_id"`
	ItemNameSnapshot  string          `gorm:"type:varchar(255);not null" json:"item_name_snapshot"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(12,2);not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
