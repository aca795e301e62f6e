package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
)

func SetupAuthRouter(api *echo.Group, authHandler *handler.AuthHandler, passwordHandler *handler.PasswordHandler, mw Middlewares) {
	auth := api.Group("/auth")

	limited := auth.Group("", mw.RateLimit.Limit(AuthAction))
	limited.POST("/register", authHandler.Register)
	limited.POST("/login", authHandler.Login)
	limited.POST("/forgot-password", passwordHandler.ForgotPassword)
	limited.POST("/reset-password", passwordHandler.ResetPassword)

	auth.GET("/me", authHandler.Me, mw.Auth.Authenticate)
}
