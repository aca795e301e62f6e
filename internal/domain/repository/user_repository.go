package repository

import (
	"context"
	"time"

	"thgamestore/internal/domain/entity"
)

type UserRepository interface {
	// Create fails with a CONFLICT error when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error)
	Count(ctx context.Context) (int64, error)
	// FindByResetToken matches email and token hash with an expiry after now.
	FindByResetToken(ctx context.Context, email, tokenHash string, now time.Time) (*entity.User, error)
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
