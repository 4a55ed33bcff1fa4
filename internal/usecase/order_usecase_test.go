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

func newOrderUsecase() (*usecase.OrderUsecase, *txReposStub) {
	repos := newTxReposStub()
	return usecase.NewOrderUsecase(&txManagerStub{repos: repos}), repos
}

func cartLines() []model.CartItem {
	return []model.CartItem{
		{CartID: 10, ItemID: 101, ItemNameSnapshot: "Apple", UnitPriceSnapshot: decimal.NewFromInt(50), Quantity: 2},
		{CartID: 10, ItemID: 102, ItemNameSnapshot: "Chips", UnitPriceSnapshot: decimal.NewFromInt(30), Quantity: 1},
	}
}

// =====================
// PlaceOrder
// =====================

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	r.carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return(cartLines(), nil)

	r.items.On("FindByID", mock.Anything, int64(101)).Return(model.Item{ID: 101, Name: "Apple"}, nil)
	r.items.On("FindByID", mock.Anything, int64(102)).Return(model.Item{ID: 102, Name: "Chips"}, nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(2)).Return(true, nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(102), int64(1)).Return(true, nil)

	r.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 1 &&
			o.Status == model.OrderStatusPlaced &&
			o.IdempotencyKey == "key-1" &&
			o.Total.Equal(decimal.NewFromInt(130))
	})).Return(int64(500), nil)
	r.orderItems.On("CreateBulk", mock.Anything, int64(500), mock.Anything).Return(nil)
	r.carts.On("Clear", mock.Anything, int64(10)).Return(nil)

	out, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{IdempotencyKey: "key-1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(500), out.ID)
	assert.Equal(t, string(model.OrderStatusPlaced), out.Status)
	assert.True(t, decimal.NewFromInt(130).Equal(out.Total))
	assert.Equal(t, 2, len(out.Items))

	r.orders.AssertExpectations(t)
	r.inventory.AssertExpectations(t)
	r.carts.AssertExpectations(t)
}

// 在庫不足なら注文もカートクリアも行わない（Tx全体がロールバックされる前提）
func TestOrderUsecase_PlaceOrder_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	r.carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return(cartLines(), nil)

	r.items.On("FindByID", mock.Anything, int64(101)).Return(model.Item{ID: 101, Name: "Apple"}, nil)
	r.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(2)).Return(false, nil)

	_, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{IdempotencyKey: "key-1"})
	assertErrContains(t, err, "insufficient stock")
	assertErrContains(t, err, "Apple")

	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	r.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(model.Order{}, false, nil)
	r.carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	_, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{IdempotencyKey: "key-1"})
	assertErrContains(t, err, "cart empty")
}

// 同じキーは既存の注文をそのまま返す（二重注文しない）
func TestOrderUsecase_PlaceOrder_IdempotentReplay(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	existing := model.Order{ID: 500, UserID: 1, Status: model.OrderStatusPlaced, Total: decimal.NewFromInt(130), IdempotencyKey: "key-1"}
	r.orders.On("FindByIdempotencyKey", mock.Anything, int64(1), "key-1").Return(existing, true, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(500)).Return([]model.OrderItem{
		{ItemID: 101, ItemNameSnapshot: "Apple", UnitPriceSnapshot: decimal.NewFromInt(50), Quantity: 2},
	}, nil)

	out, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{IdempotencyKey: "key-1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(500), out.ID)

	r.carts.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	r.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_MissingKey(t *testing.T) {
	uc, _ := newOrderUsecase()

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{IdempotencyKey: "  "})
	assertErrContains(t, err, "invalid idempotency_key")
}

// =====================
// GetMyOrderDetail
// =====================

// 他人の注文は404扱い
func TestOrderUsecase_GetMyOrderDetail_ForeignOrderHidden(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByID", mock.Anything, int64(500)).Return(model.Order{ID: 500, UserID: 2}, nil)

	_, err := uc.GetMyOrderDetail(ctx, 1, 500)
	assertErrContains(t, err, "not found")
}

func TestOrderUsecase_GetMyOrderDetail_Success(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByID", mock.Anything, int64(500)).Return(model.Order{ID: 500, UserID: 1, Status: model.OrderStatusPlaced}, nil)
	r.orderItems.On("ListByOrderID", mock.Anything, int64(500)).Return([]model.OrderItem{
		{ItemID: 101, ItemNameSnapshot: "Apple", UnitPriceSnapshot: decimal.NewFromInt(50), Quantity: 2},
	}, nil)

	out, err := uc.GetMyOrderDetail(ctx, 1, 500)
	assert.NoError(t, err)
	assert.Equal(t, int64(500), out.ID)
	assert.Equal(t, "Apple", out.Items[0].Name)
}

// =====================
// CancelOrder
// =====================

func TestOrderUsecase_CancelOrder_OwnerSuccess(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByID", mock.Anything, int64(500)).Return(model.Order{ID: 500, UserID: 1, Status: model.OrderStatusPlaced}, nil)
	r.orders.On("UpdateStatus", mock.Anything, int64(500), model.OrderStatusCancelled).Return(nil)

	err := uc.CancelOrder(ctx, 1, model.RoleUser, 500)
	assert.NoError(t, err)

	r.orders.AssertExpectations(t)
}

func TestOrderUsecase_CancelOrder_AdminCanCancelAnyOrder(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByID", mock.Anything, int64(500)).Return(model.Order{ID: 500, UserID: 7, Status: model.OrderStatusPlaced}, nil)
	r.orders.On("UpdateStatus", mock.Anything, int64(500), model.OrderStatusCancelled).Return(nil)

	err := uc.CancelOrder(ctx, 1, model.RoleAdmin, 500)
	assert.NoError(t, err)
}

func TestOrderUsecase_CancelOrder_OtherUserDenied(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByID", mock.Anything, int64(500)).Return(model.Order{ID: 500, UserID: 7, Status: model.OrderStatusPlaced}, nil)

	err := uc.CancelOrder(ctx, 1, model.RoleUser, 500)
	assertErrContains(t, err, "unauthorized")

	r.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// CANCELLEDは終端
func TestOrderUsecase_CancelOrder_AlreadyCancelled(t *testing.T) {
	ctx := context.Background()
	uc, r := newOrderUsecase()

	r.orders.On("FindByID", mock.Anything, int64(500)).Return(model.Order{ID: 500, UserID: 1, Status: model.OrderStatusCancelled}, nil)

	err := uc.CancelOrder(ctx, 1, model.RoleUser, 500)
	assertErrContains(t, err, "already cancelled")
}
