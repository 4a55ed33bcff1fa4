package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // string
)

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, role, ok := parseBearer(c, cfg.JWTSecret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserRoleKey, role)

			return next(c)
		}
	}
}

// トークンが無い・壊れている場合は匿名のまま通す。
// 未ログインのカート操作（pending actionへの退避）で使う
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, role, ok := parseBearer(c, cfg.JWTSecret); ok {
				c.Set(CtxUserIDKey, userID)
				c.Set(CtxUserRoleKey, role)
			}
			return next(c)
		}
	}
}

func parseBearer(c echo.Context, secret string) (int64, string, bool) {
	//Authorizationヘッダを取得
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return 0, "", false
	}

	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, "", false
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return 0, "", false
	}

	//JWTをパースして検証する
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return 0, "", false
	}

	//claimsを取り出す
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}

	//user_idを取り出す
	userID, err := parseUserID(claims["sub"])
	if err != nil || userID <= 0 {
		return 0, "", false
	}

	//roleを取り出す（USER/ADMIN）
	role, err := parseString(claims["role"])
	if err != nil || role == "" {
		return 0, "", false
	}

	return userID, role, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// user_idをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}
