package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ItemListQuery struct {
	Search   string
	Category string
}

// 商品の永続化（保存・取得）だけを約束。
type ItemRepository interface {
	List(ctx context.Context, q ItemListQuery) ([]model.Item, error)
	FindByID(ctx context.Context, id int64) (model.Item, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, item model.Item) (model.Item, error)
	Update(ctx context.Context, item model.Item) error
	SoftDelete(ctx context.Context, id int64) error
}
