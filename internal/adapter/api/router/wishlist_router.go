package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
)

func SetupWishlistRouter(api *echo.Group, wishlistHandler *handler.WishlistHandler, mw Middlewares) {
	wishlist := api.Group("/wishlist", mw.Auth.Authenticate)

	wishlist.GET("", wishlistHandler.List)
	wishlist.POST("/:gameId", wishlistHandler.Add)
	wishlist.DELETE("/:gameId", wishlistHandler.Remove)
}
