package handler

import (
	"errors"
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC       *auth.RegisterUserUsecase
	loginUC          *auth.LoginUsecase
	changePasswordUC *auth.ChangePasswordUsecase
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	changePasswordUC *auth.ChangePasswordUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC:       registerUC,
		loginUC:          loginUC,
		changePasswordUC: changePasswordUC,
	}
}

// /auth/register のリクエストボディ。
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/change-password", h.changePassword, middleware.AuthJWT(cfg))
}

// POST /auth/register
func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidUsername), errors.Is(err, auth.ErrPasswordTooShort):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrUsernameAlreadyExists):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, out)
}

// POST /auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		SessionID: middleware.GetSessionID(c),
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, out)
}

// POST /auth/change-password
func (h *AuthHandler) changePassword(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.changePasswordUC.Execute(c.Request().Context(), auth.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooShort):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrCurrentPasswordMismatch):
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "password changed"})
}
