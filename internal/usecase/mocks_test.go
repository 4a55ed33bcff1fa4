package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（repositoryインターフェース準拠）
// =====================

type ItemRepoMock struct{ mock.Mock }

func (m *ItemRepoMock) List(ctx context.Context, q repo.ItemListQuery) ([]model.Item, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *ItemRepoMock) FindByID(ctx context.Context, id int64) (model.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.Item)
	return it, args.Error(1)
}

func (m *ItemRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ItemRepoMock) Create(ctx context.Context, item model.Item) (model.Item, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.Item)
	return created, args.Error(1)
}

func (m *ItemRepoMock) Update(ctx context.Context, item model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, itemID int64, newStock int64) error {
	args := m.Called(ctx, itemID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, itemID int64, qty int64) (bool, error) {
	args := m.Called(ctx, itemID, qty)
	return args.Bool(0), args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	lines, _ := args.Get(0).([]model.CartItem)
	return lines, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndItem(ctx context.Context, cartID int64, itemID int64, addQty int64, nameSnapshot string, priceSnapshot decimal.Decimal) error {
	args := m.Called(ctx, cartID, itemID, addQty, nameSnapshot, priceSnapshot)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartAndItem(ctx context.Context, cartID int64, itemID int64) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

func (m *OrderRepoMock) ListCreatedBetween(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error) {
	args := m.Called(ctx, from, to)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type SessionRepoMock struct{ mock.Mock }

func (m *SessionRepoMock) GetOrCreate(ctx context.Context, sid string) (model.SessionState, error) {
	args := m.Called(ctx, sid)
	s, _ := args.Get(0).(model.SessionState)
	return s, args.Error(1)
}

func (m *SessionRepoMock) BindUser(ctx context.Context, sid string, userID int64) error {
	args := m.Called(ctx, sid, userID)
	return args.Error(0)
}

func (m *SessionRepoMock) SetPendingAction(ctx context.Context, sid string, action model.PendingAction) error {
	args := m.Called(ctx, sid, action)
	return args.Error(0)
}

func (m *SessionRepoMock) ConsumePendingAction(ctx context.Context, sid string) (model.PendingAction, bool, error) {
	args := m.Called(ctx, sid)
	a, _ := args.Get(0).(model.PendingAction)
	return a, args.Bool(1), args.Error(2)
}

func (m *SessionRepoMock) SetBuyNow(ctx context.Context, sid string, line model.BuyNowLine) error {
	args := m.Called(ctx, sid, line)
	return args.Error(0)
}

func (m *SessionRepoMock) GetBuyNow(ctx context.Context, sid string) (model.BuyNowLine, bool, error) {
	args := m.Called(ctx, sid)
	l, _ := args.Get(0).(model.BuyNowLine)
	return l, args.Bool(1), args.Error(2)
}

func (m *SessionRepoMock) ConsumeBuyNow(ctx context.Context, sid string) (model.BuyNowLine, bool, error) {
	args := m.Called(ctx, sid)
	l, _ := args.Get(0).(model.BuyNowLine)
	return l, args.Bool(1), args.Error(2)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *UserRepoMock) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateLastLoginAt(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// =====================
// Tx（テストではそのままfnを実行する）
// =====================

type txReposStub struct {
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	carts      *CartRepoMock
	cartItems  *CartItemRepoMock
	inventory  *InventoryRepoMock
	items      *ItemRepoMock
	sessions   *SessionRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		carts:      new(CartRepoMock),
		cartItems:  new(CartItemRepoMock),
		inventory:  new(InventoryRepoMock),
		items:      new(ItemRepoMock),
		sessions:   new(SessionRepoMock),
	}
}

func (r *txReposStub) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposStub) Carts() repo.CartRepository           { return r.carts }
func (r *txReposStub) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *txReposStub) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposStub) Items() repo.ItemRepository           { return r.items }
func (r *txReposStub) Sessions() repo.SessionRepository     { return r.sessions }

type txManagerStub struct {
	repos *txReposStub
}

func (t *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

// =====================
// helper
// =====================

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), want)
}

type idGenStub struct{ fixed string }

func (g idGenStub) NewID() string { return g.fixed }
