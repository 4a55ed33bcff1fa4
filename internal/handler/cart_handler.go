package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc        *usecase.CartUsecase
	pendingUC *usecase.PendingActionUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, pendingUC *usecase.PendingActionUsecase) *CartHandler {
	return &CartHandler{uc: uc, pendingUC: pendingUC}
}

type AddCartRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}

type LoginRequiredResponse struct {
	Error string `json:"error"`
	//trueならログイン後に POST /cart/resume で再実行される
	PendingSaved bool `json:"pending_saved"`
}

type CartCountResponse struct {
	Count int64 `json:"count"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")

	//追加とバッジ数は未ログインでも受ける（追加は退避してログインへ誘導）
	g.POST("", h.addToCart, middleware.OptionalAuthJWT(cfg))
	g.GET("/count", h.count, middleware.OptionalAuthJWT(cfg))

	g.GET("", h.getCart, middleware.AuthJWT(cfg))
	g.DELETE("/items/:itemID", h.removeItem, middleware.AuthJWT(cfg))
	g.POST("/resume", h.resume, middleware.AuthJWT(cfg))
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		//未ログイン：意図をセッションへ退避してログインさせる
		sid := middleware.GetSessionID(c)
		if err := h.pendingUC.Defer(c.Request().Context(), sid, req.ItemID, req.Quantity); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusUnauthorized, LoginRequiredResponse{
			Error:        "login required",
			PendingSaved: true,
		})
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// 未ログインは0を返す（エラーにしない）
func (h *CartHandler) count(c echo.Context) error {
	userID, _ := getUserIDFromContext(c)

	count, err := h.uc.Count(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CartCountResponse{Count: count})
}

// ログイン直後に退避を一度だけ再実行する
func (h *CartHandler) resume(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	sid := middleware.GetSessionID(c)

	out, err := h.pendingUC.Resume(c.Request().Context(), sid, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
