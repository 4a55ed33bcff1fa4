package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理画面のユーザー管理。
type AdminUserUsecase struct {
	userRepo repo.UserRepository
	//削除もロール降格もできないユーザー名
	primaryAdminUsername string
}

func NewAdminUserUsecase(userRepo repo.UserRepository, primaryAdminUsername string) *AdminUserUsecase {
	return &AdminUserUsecase{
		userRepo:             userRepo,
		primaryAdminUsername: primaryAdminUsername,
	}
}

func (u *AdminUserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

// ロール変更（user / admin のフォーム値をRoleへ写す）
func (u *AdminUserUsecase) UpdateRole(ctx context.Context, targetUserID int64, rawRole string) error {
	if targetUserID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var role model.Role
	switch rawRole {
	case "user":
		role = model.RoleUser
	case "admin":
		role = model.RoleAdmin
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	target, err := u.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//プライマリ管理者は降格できない
	if target.Username == u.primaryAdminUsername && role != model.RoleAdmin {
		return NewHTTPError(http.StatusBadRequest, "cannot demote the primary admin user")
	}

	if err := u.userRepo.UpdateRole(ctx, targetUserID, role); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AdminUserUsecase) Delete(ctx context.Context, targetUserID int64) error {
	if targetUserID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target, err := u.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//プライマリ管理者は削除できない
	if target.Username == u.primaryAdminUsername {
		return NewHTTPError(http.StatusBadRequest, "cannot delete the primary admin user")
	}

	if err := u.userRepo.Delete(ctx, targetUserID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
