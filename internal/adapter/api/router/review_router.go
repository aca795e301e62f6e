package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
)

func SetupReviewRouter(api *echo.Group, reviewHandler *handler.ReviewHandler, mw Middlewares) {
	reviews := api.Group("/reviews")

	// Public routes
	reviews.GET("/game/:gameId", reviewHandler.ListByGame)

	// Protected routes
	reviews.POST("/game/:gameId", reviewHandler.Upsert, mw.Auth.Authenticate)
	reviews.GET("/my", reviewHandler.ListMine, mw.Auth.Authenticate)
	reviews.DELETE("/:id", reviewHandler.Delete, mw.Auth.Authenticate)
}
