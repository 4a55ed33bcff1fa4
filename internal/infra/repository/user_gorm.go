package repository

import (
	"app/internal/domain/model"
	domainrepo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	return nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// ユーザー名でユーザーを1件取得
func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *userGormRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

func (r *userGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ロール変更
func (r *userGormRepository) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("role", role)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// パスワード変更
func (r *userGormRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// 最終ログイン更新
func (r *userGormRepository) UpdateLastLoginAt(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login_at", gorm.Expr("now()"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

func (r *userGormRepository) Delete(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}
