package handler

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/middleware"
	"thgamestore/internal/usecase"
	"thgamestore/pkg/response"
	"thgamestore/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type checkoutItemRequest struct {
	GameID   string `json:"gameId"`
	Quantity int    `json:"quantity"`
}

type checkoutRequest struct {
	Items         []checkoutItemRequest `json:"items"`
	PaymentMethod string                `json:"paymentMethod"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Checkout leaves item validation to the use case so an empty cart gets its
// own message.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	items := make([]usecase.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.CheckoutItem{GameID: item.GameID, Quantity: item.Quantity})
	}

	result, err := h.orderUseCase.Checkout(c.Request().Context(), middleware.UserID(c), usecase.CheckoutInput{
		Items:         items,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	orders, err := h.orderUseCase.ListMyOrders(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, orders)
}

func (h *OrderHandler) AdminList(c echo.Context) error {
	p := utils.GetPaginationParams(c, usecase.DefaultAdminPageSize)

	page, err := h.orderUseCase.AdminList(c.Request().Context(), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, page.Orders, page.Total, page.Page, page.Limit)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}
