package usecase

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/infrastructure/auth"
	"thgamestore/pkg/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, RegisterInput{Email: "  Player@Example.COM ", Username: "player", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "player@example.com", res.User.Email)
	assert.Equal(t, entity.RoleUser, res.User.Role)
	assert.NotEmpty(t, res.Token)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "player@example.com", Username: "again", Password: "x"})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	_, err = f.auth.Register(ctx, RegisterInput{Email: "", Username: "x", Password: "x"})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	login, err := f.auth.Login(ctx, "PLAYER@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = f.auth.Login(ctx, "player@example.com", "wrong")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.auth.Login(ctx, "nobody@example.com", "secret1")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	me, err := f.auth.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "player", me.Username)
}

func TestProfileAndChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, RegisterInput{Email: "p@example.com", Username: "p", Password: "old-pass"})
	require.NoError(t, err)

	avatar := "https://cdn.example.com/p.png"
	updated, err := f.users.UpdateProfile(ctx, res.User.ID, UpdateProfileInput{AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, avatar, updated.AvatarURL)
	assert.Equal(t, "p", updated.Username)

	blank := "  "
	_, err = f.users.UpdateProfile(ctx, res.User.ID, UpdateProfileInput{Username: &blank})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	err = f.users.ChangePassword(ctx, res.User.ID, "not-it", "new-pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Current password is incorrect")

	require.NoError(t, f.users.ChangePassword(ctx, res.User.ID, "old-pass", "new-pass"))
	_, err = f.auth.Login(ctx, "p@example.com", "new-pass")
	assert.NoError(t, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	_, err := f.auth.Register(ctx, RegisterInput{Email: "p@example.com", Username: "p", Password: "old-pass"})
	require.NoError(t, err)

	var link string
	mailer := &mockMailer{}
	mailer.On("SendPasswordReset", mock.Anything, "p@example.com", "p", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { link = args.String(3) }).
		Return(nil).Once()

	passwords := NewPasswordUseCase(f.store.Users(), hasher, mailer, "https://shop.example.com/", 15*time.Minute)

	require.NoError(t, passwords.ForgotPassword(ctx, "P@example.com"))
	mailer.AssertExpectations(t)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/reset-password", parsed.Path)
	assert.Equal(t, "shop.example.com", parsed.Host)
	token := parsed.Query().Get("token")
	assert.Len(t, token, 64)
	assert.Equal(t, "p@example.com", parsed.Query().Get("email"))

	err = passwords.ResetPassword(ctx, ResetPasswordInput{Email: "p@example.com", Token: "bogus", Password: "new-pass"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	require.NoError(t, passwords.ResetPassword(ctx, ResetPasswordInput{Email: "p@example.com", Token: token, Password: "new-pass"}))

	_, err = f.auth.Login(ctx, "p@example.com", "new-pass")
	assert.NoError(t, err)

	err = passwords.ResetPassword(ctx, ResetPasswordInput{Email: "p@example.com", Token: token, Password: "again"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest), "token is single use")

	assert.True(t, errors.Is(passwords.ForgotPassword(ctx, "nobody@example.com"), errors.CodeNotFound))
}

func TestResetTokenExpires(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "p@example.com", Username: "p", Password: "old-pass"})
	require.NoError(t, err)

	var link string
	mailer := &mockMailer{}
	mailer.On("SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { link = args.String(3) }).
		Return(nil)

	passwords := NewPasswordUseCase(f.store.Users(), auth.NewBcryptHasher(bcrypt.MinCost), mailer, "http://localhost", 15*time.Minute)
	issued := time.Now()
	passwords.now = func() time.Time { return issued }
	require.NoError(t, passwords.ForgotPassword(ctx, "p@example.com"))

	parsed, err := url.Parse(link)
	require.NoError(t, err)

	passwords.now = func() time.Time { return issued.Add(16 * time.Minute) }
	err = passwords.ResetPassword(ctx, ResetPasswordInput{Email: "p@example.com", Token: parsed.Query().Get("token"), Password: "new"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	cleared, err := passwords.PurgeExpiredTokens(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)
}
