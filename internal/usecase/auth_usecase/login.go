package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
	//sid cookie。空なら紐付けしない
	SessionID string
}

// token 形
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	User  model.User     `json:"user"`
	Token JwtAccessToken `json:"token"`
	//退避中のカート操作があるか（クライアントはtrueなら/cart/resumeを呼ぶ）
	HasPendingAction bool `json:"has_pending_action"`
}

// ユーザー名またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type LoginUsecase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	verifier    PasswordVerifier
	issuer      AccessTokenIssuer
	clock       Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		verifier:    verifier,
		issuer:      issuer,
		clock:       clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	//usernameでユーザー取得
	user, err := u.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, ErrInvalidCredentials
	}

	//最終ログイン更新（失敗してもログインは通す）
	_ = u.userRepo.UpdateLastLoginAt(ctx, user.ID)

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, err
	}

	//セッションへ紐付けて、退避中の操作が残っているか見る
	hasPending := false
	if in.SessionID != "" {
		if err := u.sessionRepo.BindUser(ctx, in.SessionID, user.ID); err == nil {
			if s, gerr := u.sessionRepo.GetOrCreate(ctx, in.SessionID); gerr == nil {
				hasPending = s.PendingActionJSON != ""
			}
		}
	}

	safeUser := *user
	safeUser.PasswordHash = ""

	out.User = safeUser
	out.Token = JwtAccessToken{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}
	out.HasPendingAction = hasPending
	return out, nil
}
