package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ItemUsecase struct {
	itemRepo      repo.ItemRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewItemUsecase(
	itemRepo repo.ItemRepository,
	inventoryRepo repo.InventoryRepository,
) *ItemUsecase {
	return &ItemUsecase{
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GET /itemsの入力DTO
type ListItemsInput struct {
	Search   string
	Category string
}

type ItemListOutput struct {
	Items []model.Item `json:"items"`
}

func (u *ItemUsecase) List(ctx context.Context, in ListItemsInput) (ItemListOutput, error) {
	if len(in.Search) > 100 {
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid search")
	}

	items, err := u.itemRepo.List(ctx, repo.ItemListQuery{
		Search:   in.Search,
		Category: in.Category,
	})
	if err != nil {
		return ItemListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ItemListOutput{Items: items}, nil
}

func (u *ItemUsecase) Get(ctx context.Context, itemID int64) (model.Item, error) {
	if itemID <= 0 {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.itemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

// 管理者の商品登録・更新入力
type SaveItemInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int64
	Category    string
	ImageRef    string
}

func validateSaveItemInput(in SaveItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	return nil
}

func (u *ItemUsecase) Create(ctx context.Context, in SaveItemInput) (model.Item, error) {
	if err := validateSaveItemInput(in); err != nil {
		return model.Item{}, err
	}

	created, err := u.itemRepo.Create(ctx, model.Item{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
		Category:    in.Category,
		ImageRef:    in.ImageRef,
	})
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ItemUsecase) Update(ctx context.Context, itemID int64, in SaveItemInput) error {
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateSaveItemInput(in); err != nil {
		return err
	}

	err := u.itemRepo.Update(ctx, model.Item{
		ID:          itemID,
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
		Category:    in.Category,
		ImageRef:    in.ImageRef,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ItemUsecase) Delete(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.itemRepo.SoftDelete(ctx, itemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 再入荷。在庫を「現在値」に置き換える
func (u *ItemUsecase) SetStock(ctx context.Context, itemID int64, newStock int64) error {
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	err := u.inventoryRepo.SetStock(ctx, itemID, newStock)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
