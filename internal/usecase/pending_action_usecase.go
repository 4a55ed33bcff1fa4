package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 未ログインのカート操作を退避して、ログイン後に一度だけ再実行する。
// Idle → Pending: Defer / Pending → Idle: Resume
type PendingActionUsecase struct {
	sessionRepo repo.SessionRepository
	cartUC      *CartUsecase
}

func NewPendingActionUsecase(sessionRepo repo.SessionRepository, cartUC *CartUsecase) *PendingActionUsecase {
	return &PendingActionUsecase{
		sessionRepo: sessionRepo,
		cartUC:      cartUC,
	}
}

type ResumeOutput struct {
	//何も退避されていなかったらfalse（エラーではない）
	Applied bool         `json:"applied"`
	Cart    CartResponse `json:"cart"`
}

// 意図をセッションに退避する（ログイン画面へ誘導する前に呼ぶ）
func (u *PendingActionUsecase) Defer(ctx context.Context, sid string, itemID int64, qty int64) error {
	if sid == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}
	if qty < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	err := u.sessionRepo.SetPendingAction(ctx, sid, model.PendingAction{
		Action:   model.PendingActionAddToCart,
		ItemID:   itemID,
		Quantity: qty,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ログイン直後に一度だけ呼ぶ。
// 読み取りと削除はrepo側で不可分なので、途中で落ちて再実行しても二重適用しない。
func (u *PendingActionUsecase) Resume(ctx context.Context, sid string, userID int64) (ResumeOutput, error) {
	if userID <= 0 {
		return ResumeOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sid == "" {
		return ResumeOutput{Applied: false}, nil
	}

	action, found, err := u.sessionRepo.ConsumePendingAction(ctx, sid)
	if err != nil {
		return ResumeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		//退避なしは成功扱い（商品一覧へ戻すだけ）
		return ResumeOutput{Applied: false}, nil
	}
	if action.Action != model.PendingActionAddToCart {
		return ResumeOutput{Applied: false}, nil
	}

	cart, err := u.cartUC.AddToCart(ctx, userID, AddCartInput{
		ItemID:   action.ItemID,
		Quantity: action.Quantity,
	})
	if err != nil {
		return ResumeOutput{}, err
	}

	return ResumeOutput{Applied: true, Cart: cart}, nil
}
