package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
	"thgamestore/internal/adapter/api/middleware"
)

// AuthAction is the rate-limit policy applied to register and login.
const AuthAction = "auth"

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	Admin     *middleware.AdminMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func Setup(e *echo.Echo, h *handler.Handlers, mw Middlewares) {
	api := e.Group("/api")

	SetupAuthRouter(api, h.Auth, h.Password, mw)
	SetupUserRouter(api, h.User, mw)
	SetupGameRouter(api, h.Game, mw)
	SetupOrderRouter(api, h.Order, mw)
	SetupLibraryRouter(api, h.Library, mw)
	SetupReviewRouter(api, h.Review, mw)
	SetupWishlistRouter(api, h.Wishlist, mw)
	SetupAdminRouter(api, h.Admin, h.Game, h.Order, mw)
	SetupUploadRouter(api, h.Upload, mw)
	SetupHealthRouter(e, h.Health)
}
