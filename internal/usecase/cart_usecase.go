package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// Repositoryは Cart と CartItem を分離して受け取ります。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	itemRepo     repo.ItemRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	itemRepo repo.ItemRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		itemRepo:     itemRepo,
	}
}

// price は unit_price_snapshot（追加時点の価格）を返します。
type CartLineResponse struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type AddCartInput struct {
	ItemID   int64
	Quantity int64
}

// ComputeTotal はスナップショット価格×数量の合計。I/Oしない
func ComputeTotal(lines []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPriceSnapshot.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
// 在庫チェックは確定時にやり直すので、ここではしない。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品チェック
	item, err := u.itemRepo.FindByID(ctx, in.ItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）
	// スナップショットは「追加時点の名前・価格」を渡す
	if err := u.cartItemRepo.UpsertByCartAndItem(ctx, cart.ID, in.ItemID, in.Quantity, item.Name, item.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除。無い明細の削除は成功扱い（エラーにしない）
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, itemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		// カートがまだ無い＝消すものが無い
		return CartResponse{Items: []CartLineResponse{}, Total: decimal.Zero}, nil
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.cartItemRepo.DeleteByCartAndItem(ctx, cart.ID, itemID)
	if err != nil && err != repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// バッジ表示用の数量合計
func (u *CartUsecase) Count(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, nil
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var count int64 = 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count, nil
}

// cartIDの明細をまとめてCartResponseを作る。
// 表示もスナップショットを使う（カタログ価格とは同期しない）。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	lines, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		respItems = append(respItems, CartLineResponse{
			ItemID:   l.ItemID,
			Name:     l.ItemNameSnapshot,
			Price:    l.UnitPriceSnapshot,
			Quantity: l.Quantity,
		})
	}

	return CartResponse{Items: respItems, Total: ComputeTotal(lines)}, nil
}
