package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const primaryAdmin = "admin"

func newAdminUserUsecase() (*usecase.AdminUserUsecase, *UserRepoMock) {
	userRepo := new(UserRepoMock)
	return usecase.NewAdminUserUsecase(userRepo, primaryAdmin), userRepo
}

func TestAdminUserUsecase_UpdateRole_Promote(t *testing.T) {
	ctx := context.Background()
	uc, userRepo := newAdminUserUsecase()

	userRepo.On("FindByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Username: "alice", Role: model.RoleUser}, nil)
	userRepo.On("UpdateRole", mock.Anything, int64(2), model.RoleAdmin).Return(nil)

	err := uc.UpdateRole(ctx, 2, "admin")
	assert.NoError(t, err)

	userRepo.AssertExpectations(t)
}

func TestAdminUserUsecase_UpdateRole_InvalidRole(t *testing.T) {
	uc, _ := newAdminUserUsecase()

	err := uc.UpdateRole(context.Background(), 2, "superuser")
	assertErrContains(t, err, "invalid role")
}

// プライマリ管理者は降格不可
func TestAdminUserUsecase_UpdateRole_PrimaryAdminCannotBeDemoted(t *testing.T) {
	ctx := context.Background()
	uc, userRepo := newAdminUserUsecase()

	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: primaryAdmin, Role: model.RoleAdmin}, nil)

	err := uc.UpdateRole(ctx, 1, "user")
	assertErrContains(t, err, "cannot demote")

	userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUserUsecase_Delete_Success(t *testing.T) {
	ctx := context.Background()
	uc, userRepo := newAdminUserUsecase()

	userRepo.On("FindByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Username: "alice"}, nil)
	userRepo.On("Delete", mock.Anything, int64(2)).Return(nil)

	err := uc.Delete(ctx, 2)
	assert.NoError(t, err)
}

// プライマリ管理者は削除不可
func TestAdminUserUsecase_Delete_PrimaryAdminProtected(t *testing.T) {
	ctx := context.Background()
	uc, userRepo := newAdminUserUsecase()

	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: primaryAdmin, Role: model.RoleAdmin}, nil)

	err := uc.Delete(ctx, 1)
	assertErrContains(t, err, "cannot delete")

	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminUserUsecase_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, userRepo := newAdminUserUsecase()

	userRepo.On("FindByID", mock.Anything, int64(99)).Return(nil, repo.ErrUserNotFound)

	err := uc.Delete(ctx, 99)
	assertErrContains(t, err, "user not found")
}
