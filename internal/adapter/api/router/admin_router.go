package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
)

func SetupAdminRouter(
	api *echo.Group,
	adminHandler *handler.AdminHandler,
	gameHandler *handler.GameHandler,
	orderHandler *handler.OrderHandler,
	mw Middlewares,
) {
	admin := api.Group("/admin", mw.Auth.Authenticate, mw.Admin.AdminOnly)

	admin.GET("/dashboard", adminHandler.Dashboard)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/role", adminHandler.UpdateUserRole)

	admin.GET("/orders", orderHandler.AdminList)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

	admin.GET("/games", gameHandler.AdminList)
	admin.POST("/games", gameHandler.Create)
	admin.PUT("/games/:id", gameHandler.Update)
	admin.DELETE("/games/:id", gameHandler.Delete)
}
