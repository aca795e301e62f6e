package router

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"thgamestore/internal/adapter/api/handler"
	"thgamestore/internal/usecase"
)

func SetupUploadRouter(api *echo.Group, uploadHandler *handler.UploadHandler, mw Middlewares) {
	upload := api.Group("/upload", mw.Auth.Authenticate, mw.Admin.AdminOnly)

	// Leave headroom for the multipart envelope around the file itself.
	bodyLimit := echomw.BodyLimit(fmt.Sprintf("%dM", usecase.MaxImageUploadMB+1))
	upload.POST("/image", uploadHandler.UploadImage, bodyLimit)
}
