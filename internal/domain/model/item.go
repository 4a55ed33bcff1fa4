package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 商品（食料品）。価格はnumericで保持する。
type Item struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Stock       int64           `gorm:"not null" json:"stock"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	ImageRef    string          `gorm:"type:varchar(255)" json:"image_ref"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
