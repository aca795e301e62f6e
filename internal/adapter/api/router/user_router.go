package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
)

func SetupUserRouter(api *echo.Group, userHandler *handler.UserHandler, mw Middlewares) {
	users := api.Group("/users", mw.Auth.Authenticate)

	users.GET("/me", userHandler.GetProfile)
	users.PUT("/me", userHandler.UpdateProfile)
	users.PUT("/change-password", userHandler.ChangePassword)
}
