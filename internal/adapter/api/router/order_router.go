package router

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/handler"
)

func SetupOrderRouter(api *echo.Group, orderHandler *handler.OrderHandler, mw Middlewares) {
	orders := api.Group("/orders", mw.Auth.Authenticate)

	orders.POST("/checkout", orderHandler.Checkout)
	orders.GET("/my", orderHandler.MyOrders)
}
