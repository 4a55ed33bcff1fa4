package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Username string
	Password string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.User
}

var (
	// 入力が不正
	ErrInvalidUsername  = errors.New("invalid username")
	ErrPasswordTooShort = errors.New("password too short")

	// 競合
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	username := strings.TrimSpace(in.Username)
	if username == "" || len(username) > 100 {
		return out, ErrInvalidUsername
	}

	// passwordの長さチェック（最小6文字）
	if len(in.Password) < 6 {
		return out, ErrPasswordTooShort
	}

	// username重複チェック
	existing, err := u.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return out, ErrUsernameAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	// Userを作って保存
	now := u.clock.Now()

	user := &model.User{
		Username:     username,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return out, err
	}

	out.User = *user
	return out, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
