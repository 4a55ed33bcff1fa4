package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PendingActionKind string

const (
	PendingActionAddToCart PendingActionKind = "add_to_cart"
)

// 未ログインでカート操作したときに退避する意図。
// ログイン成功後に一度だけ再実行して消す。
type PendingAction struct {
	Action   PendingActionKind `json:"action"`
	ItemID   int64             `json:"item_id"`
	Quantity int64             `json:"quantity"`
}

// Buy Nowでセッションに置く1明細（カートは経由しない）
type BuyNowLine struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// クライアントごとのセッション状態。
// sid cookieのUUIDを主キーにする。pending/buy_nowはJSON文字列で保持（空なら無し）。
type SessionState struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            *int64    `gorm:"index" json:"user_id"`
	PendingActionJSON string    `gorm:"type:text;not null;default:''" json:"-"`
	BuyNowItemJSON    string    `gorm:"type:text;not null;default:''" json:"-"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
