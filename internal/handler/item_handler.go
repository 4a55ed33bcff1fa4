package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	//usecaseのHTTPErrorならそのステータスで返す
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func getRoleFromContext(c echo.Context) string {
	v := c.Get("user_role")
	role, ok := v.(string)
	if !ok {
		return ""
	}
	return role
}

// 商品一覧・詳細のHTTP
type ItemHandler struct {
	uc *usecase.ItemUsecase
}

// DI
func NewItemHandler(uc *usecase.ItemUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/items", h.list)
	e.GET("/items/:id", h.get)
}

func (h *ItemHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.ListItemsInput{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
