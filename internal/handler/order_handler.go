package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc       *usecase.OrderUsecase
	buyNowUC *usecase.BuyNowUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, buyNowUC *usecase.BuyNowUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, buyNowUC: buyNowUC}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("/:id/cancel", h.cancel)
	g.POST("/buy-now", h.placeBuyNow)

	//Buy Nowの選択とチェックアウト表示
	e.POST("/buy-now/:itemID", h.saveBuyNow, middleware.AuthJWT(cfg))
	e.GET("/checkout/buy-now", h.checkoutBuyNow, middleware.AuthJWT(cfg))
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	//二重送信防止キーはヘッダーから受け取る
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		IdempotencyKey: idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 本人か管理者だけキャンセルできる
func (h *OrderHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	role := model.Role(getRoleFromContext(c))

	if err := h.uc.CancelOrder(c.Request().Context(), userID, role, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "order cancelled"})
}

func (h *OrderHandler) saveBuyNow(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	sid := middleware.GetSessionID(c)

	if err := h.buyNowUC.Save(c.Request().Context(), sid, userID, itemID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "buy now saved"})
}

func (h *OrderHandler) checkoutBuyNow(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	sid := middleware.GetSessionID(c)

	out, err := h.buyNowUC.Checkout(c.Request().Context(), sid, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) placeBuyNow(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	sid := middleware.GetSessionID(c)

	out, err := h.buyNowUC.Place(c.Request().Context(), sid, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
