package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//ユーザー名からユーザーを1件取得する。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	//全ユーザー一覧（管理画面用）
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	//ロール変更
	UpdateRole(ctx context.Context, userID int64, role model.Role) error
	//パスワード変更
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
	//最終ログイン更新
	UpdateLastLoginAt(ctx context.Context, userID int64) error
	//削除（プライマリ管理者の保護はusecase側）
	Delete(ctx context.Context, userID int64) error
}
