package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
)

func SetupLibraryRouter(api *echo.Group, libraryHandler *handler.LibraryHandler, mw Middlewares) {
	library := api.Group("/library", mw.Auth.Authenticate)

	library.GET("", libraryHandler.List)
	library.GET("/check/:gameId", libraryHandler.Check)
	library.GET("/download/:gameId", libraryHandler.Download)
}
