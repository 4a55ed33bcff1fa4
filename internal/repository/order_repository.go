package repository

import (
	"context"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)

	//管理者用の注文一覧
	ListAll(ctx context.Context) ([]model.Order, error)

	//分析用
	Count(ctx context.Context) (int64, error)
	SumTotals(ctx context.Context) (decimal.Decimal, error)
	ListCreatedBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error)
}
