package middleware

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/domain/entity"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/response"
)

type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// AdminOnly must run after AuthMiddleware.Authenticate.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserID(c) == "" {
			return response.Error(c, errors.Unauthorized("No token, not authorized", nil))
		}
		if Role(c) != entity.RoleAdmin {
			return response.Error(c, errors.Forbidden("Admin only", nil))
		}
		return next(c)
	}
}
