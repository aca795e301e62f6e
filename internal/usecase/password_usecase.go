package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/logger"
)

const resetTokenBytes = 32

type PasswordUseCase struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	mailer    Mailer
	clientURL string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewPasswordUseCase(userRepo repository.UserRepository, hasher PasswordHasher, mailer Mailer, clientURL string, tokenTTL time.Duration) *PasswordUseCase {
	return &PasswordUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		mailer:    mailer,
		clientURL: strings.TrimRight(clientURL, "/"),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

type ResetPasswordInput struct {
	Email    string
	Token    string
	Password string
}

// ForgotPassword stores a fresh reset token for the account and mails the
// link carrying it.
func (uc *PasswordUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return errors.Internal("Failed to generate reset token", err)
	}

	expiry := uc.now().Add(uc.tokenTTL)
	user.ResetTokenHash = hashResetToken(token)
	user.ResetTokenExpiry = &expiry
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	link := uc.resetLink(token, user.Email)
	if err := uc.mailer.SendPasswordReset(ctx, user.Email, user.Username, link); err != nil {
		return errors.Internal("Failed to send reset email", err)
	}

	logger.WithFields(map[string]interface{}{"userId": user.ID}).Info("password reset requested")
	return nil
}

func (uc *PasswordUseCase) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if input.Token == "" || input.Email == "" || input.Password == "" {
		return errors.Validation("Missing fields")
	}

	user, err := uc.userRepo.FindByResetToken(ctx, entity.NormalizeEmail(input.Email), hashResetToken(input.Token), uc.now())
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return errors.BadRequest("Token invalid or expired", nil)
		}
		return err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}

	user.PasswordHash = hash
	user.ResetTokenHash = ""
	user.ResetTokenExpiry = nil
	return uc.userRepo.Update(ctx, user)
}

// PurgeExpiredTokens clears reset tokens whose expiry has passed.
func (uc *PasswordUseCase) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return uc.userRepo.ClearExpiredResetTokens(ctx, uc.now())
}

func (uc *PasswordUseCase) resetLink(token, email string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return uc.clientURL + "/reset-password?" + q.Encode()
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
