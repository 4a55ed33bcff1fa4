package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 商品の管理者向けCRUD。
type AdminItemHandler struct {
	uc *usecase.ItemUsecase
}

// DI
func NewAdminItemHandler(uc *usecase.ItemUsecase) *AdminItemHandler {
	return &AdminItemHandler{uc: uc}
}

type saveItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int64           `json:"stock"`
	Category    string          `json:"category"`
	ImageRef    string          `json:"image_ref"`
}

type setStockRequest struct {
	Stock int64 `json:"stock"`
}

func (h *AdminItemHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/items", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PATCH("/:id/stock", h.setStock)
}

// POST /admin/items
func (h *AdminItemHandler) create(c echo.Context) error {
	var req saveItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	created, err := h.uc.Create(c.Request().Context(), usecase.SaveItemInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageRef:    req.ImageRef,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// PUT /admin/items/:id
func (h *AdminItemHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req saveItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Update(c.Request().Context(), id, usecase.SaveItemInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageRef:    req.ImageRef,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "item updated"})
}

// DELETE /admin/items/:id
func (h *AdminItemHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "item deleted"})
}

// PATCH /admin/items/:id/stock
func (h *AdminItemHandler) setStock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.SetStock(c.Request().Context(), id, req.Stock); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "stock updated"})
}
