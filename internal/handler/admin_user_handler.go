package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ユーザーの管理者向け操作。
type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

// DI
func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/users", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	g.GET("", h.list)
	g.PATCH("/:id/role", h.updateRole)
	g.DELETE("/:id", h.delete)
}

// GET /admin/users
func (h *AdminUserHandler) list(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	//パスワードハッシュを出さないようDTOへ詰め替える
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{
			ID:       u.ID,
			Username: u.Username,
			Role:     string(u.Role),
		})
	}

	return c.JSON(http.StatusOK, map[string][]userResponse{"users": out})
}

// PATCH /admin/users/:id/role
func (h *AdminUserHandler) updateRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateRole(c.Request().Context(), id, req.Role); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "role updated"})
}

// DELETE /admin/users/:id
func (h *AdminUserHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "user deleted"})
}
