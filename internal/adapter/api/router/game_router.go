package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
)

func SetupGameRouter(api *echo.Group, gameHandler *handler.GameHandler, mw Middlewares) {
	games := api.Group("/games")

	// Public routes. The fixed list paths must not be read as slugs.
	games.GET("", gameHandler.List)
	games.GET("/top-sell/list", gameHandler.TopSelling)
	games.GET("/latest/list", gameHandler.Latest)
	games.GET("/filters/options", gameHandler.FilterOptions)
	games.GET("/:slug", gameHandler.GetBySlug)

	// Admin routes
	games.POST("", gameHandler.Create, mw.Auth.Authenticate, mw.Admin.AdminOnly)
	games.PUT("/:id", gameHandler.Update, mw.Auth.Authenticate, mw.Admin.AdminOnly)
	games.DELETE("/:id", gameHandler.Delete, mw.Auth.Authenticate, mw.Admin.AdminOnly)
}
