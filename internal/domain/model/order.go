package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64           `gorm:"not null;index" json:"user_id"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	IdempotencyKey string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
