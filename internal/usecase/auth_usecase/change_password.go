package auth

import (
	"context"
	"errors"

	"app/internal/repository"
)

var ErrCurrentPasswordMismatch = errors.New("current password incorrect")

type ChangePasswordInput struct {
	UserID          int64
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	hasher   PasswordHasher
}

func NewChangePasswordUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	hasher PasswordHasher,
) *ChangePasswordUsecase {
	return &ChangePasswordUsecase{
		userRepo: userRepo,
		verifier: verifier,
		hasher:   hasher,
	}
}

func (u *ChangePasswordUsecase) Execute(ctx context.Context, in ChangePasswordInput) error {
	if len(in.NewPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := u.userRepo.FindByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	//現在のパスワード照合
	if !u.verifier.Verify(in.CurrentPassword, user.PasswordHash) {
		return ErrCurrentPasswordMismatch
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePasswordHash(ctx, in.UserID, hashed)
}
