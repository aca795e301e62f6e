package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/response"
)

const (
	ContextUserID = "uid"
	ContextRole   = "role"
	ContextUser   = "user"
)

type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

type AuthMiddleware struct {
	tokens   TokenValidator
	userRepo repository.UserRepository
}

func NewAuthMiddleware(tokens TokenValidator, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Authenticate resolves the bearer token to a stored user. The role comes
// from the user record, not the token, so a demotion applies immediately.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return response.Error(c, errors.Unauthorized("No token, not authorized", nil))
		}

		userID, err := m.tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return response.Error(c, errors.Unauthorized("Token invalid", err))
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return response.Error(c, errors.Unauthorized("User not found", nil))
			}
			return response.Error(c, err)
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, user.Role)
		c.Set(ContextUser, user)
		return next(c)
	}
}

// UserID returns the id set by Authenticate, or "" outside protected routes.
func UserID(c echo.Context) string {
	uid, _ := c.Get(ContextUserID).(string)
	return uid
}

func Role(c echo.Context) string {
	role, _ := c.Get(ContextRole).(string)
	return role
}

func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(ContextUser).(*entity.User)
	return user
}
