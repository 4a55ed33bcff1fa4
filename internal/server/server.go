package server

import (
	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"
	repo "app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全ハンドラをまとめて受け取る。
type Handlers struct {
	Auth           *handler.AuthHandler
	Item           *handler.ItemHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	AdminItem      *handler.AdminItemHandler
	AdminUser      *handler.AdminUserHandler
	AdminAnalytics *handler.AdminAnalyticsHandler
}

// echoを組み立ててルートを登録する。起動はStartで。
func New(cfg config.Config, sessionRepo repo.SessionRepository, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	//匿名でもsidクッキーを持たせる
	e.Use(appmw.EnsureSession(sessionRepo))

	h.Auth.RegisterRoutes(e, cfg)
	h.Item.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminItem.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
	h.AdminAnalytics.RegisterRoutes(e, cfg)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
