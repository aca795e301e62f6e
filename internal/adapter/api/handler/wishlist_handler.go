package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/middleware"
	"thgamestore/internal/usecase"
	"thgamestore/pkg/response"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

func (h *WishlistHandler) List(c echo.Context) error {
	items, err := h.wishlistUseCase.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *WishlistHandler) Add(c echo.Context) error {
	if err := h.wishlistUseCase.Add(c.Request().Context(), middleware.UserID(c), c.Param("gameId")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusCreated, "Added to wishlist")
}

func (h *WishlistHandler) Remove(c echo.Context) error {
	if err := h.wishlistUseCase.Remove(c.Request().Context(), middleware.UserID(c), c.Param("gameId")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Removed from wishlist")
}
