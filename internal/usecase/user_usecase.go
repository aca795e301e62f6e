package usecase

import (
	"context"
	"strings"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewUserUseCase(userRepo repository.UserRepository, hasher PasswordHasher) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// UpdateProfileInput leaves a field unchanged when it is nil.
type UpdateProfileInput struct {
	Username  *string
	AvatarURL *string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, errors.Validation("username cannot be empty")
		}
		user.Username = username
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return errors.Validation("Missing fields")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := uc.hasher.Compare(user.PasswordHash, currentPassword)
	if err != nil {
		return errors.Internal("Failed to verify password", err)
	}
	if !ok {
		return errors.BadRequest("Current password is incorrect", nil)
	}

	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}
	user.PasswordHash = hash
	return uc.userRepo.Update(ctx, user)
}
