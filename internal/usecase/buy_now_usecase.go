package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// Buy Nowはカートを経由しない。
// セッションに1明細だけ置いて、確定時にそのまま注文にする。
// カート確定と違って在庫の再チェック・減算はしない（現行挙動に合わせる。DESIGN.md参照）。
type BuyNowUsecase struct {
	tx          repo.TransactionManager
	sessionRepo repo.SessionRepository
	itemRepo    repo.ItemRepository
	idGen       IDGenerator
}

func NewBuyNowUsecase(
	tx repo.TransactionManager,
	sessionRepo repo.SessionRepository,
	itemRepo repo.ItemRepository,
	idGen IDGenerator,
) *BuyNowUsecase {
	return &BuyNowUsecase{
		tx:          tx,
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
		idGen:       idGen,
	}
}

type BuyNowCheckoutOutput struct {
	Item  model.BuyNowLine `json:"item"`
	Total decimal.Decimal  `json:"total"`
}

// 商品を数量1でセッションに置く
func (u *BuyNowUsecase) Save(ctx context.Context, sid string, userID int64, itemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sid == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}

	item, err := u.itemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.sessionRepo.SetBuyNow(ctx, sid, model.BuyNowLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// チェックアウト表示用
func (u *BuyNowUsecase) Checkout(ctx context.Context, sid string, userID int64) (BuyNowCheckoutOutput, error) {
	if userID <= 0 {
		return BuyNowCheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	line, found, err := u.sessionRepo.GetBuyNow(ctx, sid)
	if err != nil {
		return BuyNowCheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return BuyNowCheckoutOutput{}, NewHTTPError(http.StatusNotFound, "no item selected")
	}

	return BuyNowCheckoutOutput{
		Item:  line,
		Total: line.Price.Mul(decimal.NewFromInt(line.Quantity)),
	}, nil
}

// セッションの1明細から注文を作る。
// セッションの消込と注文作成は1トランザクション
func (u *BuyNowUsecase) Place(ctx context.Context, sid string, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		line, found, err := r.Sessions().ConsumeBuyNow(ctx, sid)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !found {
			return NewHTTPError(http.StatusBadRequest, "no item to order")
		}

		total := line.Price.Mul(decimal.NewFromInt(line.Quantity))
		now := time.Now()

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID: userID,
			Status: model.OrderStatusPlaced,
			Total:  total,
			//Buy Nowは二重送信キーを受け取らないので内部で採番する
			IdempotencyKey: u.idGen.NewID(),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderItems := []model.OrderItem{
			{
				ItemID:            line.ItemID,
				ItemNameSnapshot:  line.Name,
				UnitPriceSnapshot: line.Price,
				Quantity:          line.Quantity,
				CreatedAt:         now,
			},
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(model.Order{
			ID:        orderID,
			UserID:    userID,
			Status:    model.OrderStatusPlaced,
			Total:     total,
			CreatedAt: now,
		}, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
