package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細（確定時のスナップショット。以後不変）
type OrderItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64           `gorm:"not null;index" json:"order_id"`
	ItemID            int64           `gorm:"not null;index" json:"item_id"`
	ItemNameSnapshot  string          `gorm:"type:varchar(255);not null" json:"item_name_snapshot"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_snapshot"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
