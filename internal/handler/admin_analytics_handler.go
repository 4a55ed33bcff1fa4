package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者ダッシュボードと分析。注文一覧もここに載せる。
type AdminAnalyticsHandler struct {
	analyticsUC *usecase.AnalyticsUsecase
	orderUC     *usecase.OrderUsecase
}

// DI
func NewAdminAnalyticsHandler(analyticsUC *usecase.AnalyticsUsecase, orderUC *usecase.OrderUsecase) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{
		analyticsUC: analyticsUC,
		orderUC:     orderUC,
	}
}

func (h *AdminAnalyticsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("/dashboard", h.dashboard)
	g.GET("/analytics", h.analytics)
	g.GET("/orders", h.listOrders)
}

// GET /admin/dashboard
func (h *AdminAnalyticsHandler) dashboard(c echo.Context) error {
	out, err := h.analyticsUC.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /admin/analytics
func (h *AdminAnalyticsHandler) analytics(c echo.Context) error {
	out, err := h.analyticsUC.Analytics(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /admin/orders
func (h *AdminAnalyticsHandler) listOrders(c echo.Context) error {
	orders, err := h.orderUC.ListAllOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string][]usecase.OrderOutput{"orders": orders})
}
