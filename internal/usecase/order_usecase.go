package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type PlaceOrderInput struct {
	IdempotencyKey string
}

type OrderLineOutput struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Status    string            `json:"status"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderLineOutput `json:"items"`
}

// PlaceOrder はカートから注文を確定する。
// 在庫の再チェック〜注文作成〜カートのクリアまでを1トランザクションで行う
// （途中で失敗したら全部ロールバック。部分的な減算は残らない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		//カート取得
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カート明細取得
		lines, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//在庫を確定時に再チェックして減らす
		//（追加時から在庫が変わっていることがあるため）
		orderItems := make([]model.OrderItem, 0, len(lines))
		total := decimal.Zero

		for _, l := range lines {
			//商品の存在チェック
			_, err := r.Items().FindByID(ctx, l.ItemID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "insufficient stock: "+l.ItemNameSnapshot)
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りないなら false）。チェックと適用は1文
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ItemID, l.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "insufficient stock: "+l.ItemNameSnapshot)
			}

			//カートのスナップショットをそのまま注文へ写す
			//（チェックアウトは追加時点の価格・名前で確定する）
			now := time.Now()
			orderItems = append(orderItems, model.OrderItem{
				ItemID:            l.ItemID,
				ItemNameSnapshot:  l.ItemNameSnapshot,
				UnitPriceSnapshot: l.UnitPriceSnapshot,
				Quantity:          l.Quantity,
				CreatedAt:         now,
			})

			total = total.Add(l.UnitPriceSnapshot.Mul(decimal.NewFromInt(l.Quantity)))
		}

		// 注文作成
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:         userID,
			Status:         model.OrderStatusPlaced,
			Total:          total,
			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			//競合（同時で同じキーが入った等）はもう一回検索して同じ結果を返す
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = toOrderOutput(ex2, items2)
				return nil
			}
			return NewHTTPError(http.StatusBadRequest, "idempotency conflict")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをクリア（カート自体は残す）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:        orderID,
			UserID:    userID,
			Status:    model.OrderStatusPlaced,
			Total:     total,
			CreatedAt: now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelOrder は PLACED → CANCELLED。
// 本人か管理者だけ。CANCELLEDは終端で、在庫は戻さない。
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, role model.Role, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//所有チェック（管理者は誰のでもキャンセル可）
		if o.UserID != userID && role != model.RoleAdmin {
			return NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		//終端ガード
		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, "already cancelled")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// 管理者用の注文一覧
func (u *OrderUsecase) ListAllOrders(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderLineOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderLineOutput{
			ItemID:   it.ItemID,
			Name:     it.ItemNameSnapshot,
			Price:    it.UnitPriceSnapshot,
			Quantity: it.Quantity,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		Items:     outItems,
	}
}
