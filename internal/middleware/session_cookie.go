package middleware

import (
	"net/http"

	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "session_id" // string
	SessionCookieName = "sid"
)

// sid cookieを全クライアント（未ログイン含む）に発行して、
// セッション行を用意する。pending action / buy nowはこのsidに紐づく
func EnsureSession(sessionRepo repo.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""

			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if _, perr := uuid.Parse(cookie.Value); perr == nil {
					sid = cookie.Value
				}
			}

			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if _, err := sessionRepo.GetOrCreate(c.Request().Context(), sid); err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.Set(CtxSessionIDKey, sid)
			return next(c)
		}
	}
}

// EnsureSessionが入れたsidを取り出す
func GetSessionID(c echo.Context) string {
	v := c.Get(CtxSessionIDKey)
	sid, ok := v.(string)
	if !ok {
		return ""
	}
	return sid
}
