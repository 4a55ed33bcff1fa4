package repository

import (
	"context"

	"app/internal/domain/model"
)

// セッション状態の永続化。
// pending/buy_nowのConsume系は「読み取りと削除を1回で」行う（再実行しても二重適用しない）。
type SessionRepository interface {
	GetOrCreate(ctx context.Context, sid string) (model.SessionState, error)
	BindUser(ctx context.Context, sid string, userID int64) error

	SetPendingAction(ctx context.Context, sid string, action model.PendingAction) error
	// 読み取りと同時に削除する。無ければfalse
	ConsumePendingAction(ctx context.Context, sid string) (model.PendingAction, bool, error)

	SetBuyNow(ctx context.Context, sid string, line model.BuyNowLine) error
	GetBuyNow(ctx context.Context, sid string) (model.BuyNowLine, bool, error)
	// 読み取りと同時に削除する。無ければfalse
	ConsumeBuyNow(ctx context.Context, sid string) (model.BuyNowLine, bool, error)
}
