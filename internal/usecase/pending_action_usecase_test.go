package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPendingUsecase() (*usecase.PendingActionUsecase, *SessionRepoMock, *CartRepoMock, *CartItemRepoMock, *ItemRepoMock) {
	sessionRepo := new(SessionRepoMock)
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)
	itemRepo := new(ItemRepoMock)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, itemRepo)
	return usecase.NewPendingActionUsecase(sessionRepo, cartUC), sessionRepo, cartRepo, cartItemRepo, itemRepo
}

func TestPendingActionUsecase_Defer_SavesIntent(t *testing.T) {
	uc, sessionRepo, _, _, _ := newPendingUsecase()

	sessionRepo.On("SetPendingAction", mock.Anything, "sid-1", model.PendingAction{
		Action:   model.PendingActionAddToCart,
		ItemID:   101,
		Quantity: 2,
	}).Return(nil)

	err := uc.Defer(context.Background(), "sid-1", 101, 2)
	assert.NoError(t, err)

	sessionRepo.AssertExpectations(t)
}

func TestPendingActionUsecase_Defer_InvalidSession(t *testing.T) {
	uc, _, _, _, _ := newPendingUsecase()

	err := uc.Defer(context.Background(), "", 101, 1)
	assertErrContains(t, err, "invalid session")
}

// 退避した操作はログイン後に一度だけカートへ適用される
func TestPendingActionUsecase_Resume_AppliesOnce(t *testing.T) {
	ctx := context.Background()
	uc, sessionRepo, cartRepo, cartItemRepo, itemRepo := newPendingUsecase()

	price := decimal.NewFromInt(50)

	sessionRepo.On("ConsumePendingAction", mock.Anything, "sid-1").Return(model.PendingAction{
		Action:   model.PendingActionAddToCart,
		ItemID:   101,
		Quantity: 2,
	}, true, nil).Once()

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Item{ID: 101, Name: "Apple", Price: price}, nil)
	cartItemRepo.On("UpsertByCartAndItem", mock.Anything, int64(10), int64(101), int64(2), "Apple", price).Return(nil)
	cartItemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{CartID: 10, ItemID: 101, ItemNameSnapshot: "Apple", UnitPriceSnapshot: price, Quantity: 2},
	}, nil)

	out, err := uc.Resume(ctx, "sid-1", 1)
	assert.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, int64(2), out.Cart.Items[0].Quantity)

	//2回目は消費済みなので何も適用しない
	sessionRepo.On("ConsumePendingAction", mock.Anything, "sid-1").Return(model.PendingAction{}, false, nil).Once()

	out2, err := uc.Resume(ctx, "sid-1", 1)
	assert.NoError(t, err)
	assert.False(t, out2.Applied)

	cartItemRepo.AssertNumberOfCalls(t, "UpsertByCartAndItem", 1)
}

// 退避なしのResumeはエラーではない
func TestPendingActionUsecase_Resume_NothingPending(t *testing.T) {
	uc, sessionRepo, _, _, _ := newPendingUsecase()

	sessionRepo.On("ConsumePendingAction", mock.Anything, "sid-1").Return(model.PendingAction{}, false, nil)

	out, err := uc.Resume(context.Background(), "sid-1", 1)
	assert.NoError(t, err)
	assert.False(t, out.Applied)
}

func TestPendingActionUsecase_Resume_Unauthorized(t *testing.T) {
	uc, _, _, _, _ := newPendingUsecase()

	_, err := uc.Resume(context.Background(), "sid-1", 0)
	assertErrContains(t, err, "unauthorized")
}
