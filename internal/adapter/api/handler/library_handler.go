package handler

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/middleware"
	"thgamestore/internal/usecase"
	"thgamestore/pkg/response"
)

type LibraryHandler struct {
	libraryUseCase *usecase.LibraryUseCase
}

func NewLibraryHandler(libraryUseCase *usecase.LibraryUseCase) *LibraryHandler {
	return &LibraryHandler{
		libraryUseCase: libraryUseCase,
	}
}

type ownershipResponse struct {
	HasGame bool `json:"hasGame"`
}

func (h *LibraryHandler) List(c echo.Context) error {
	items, err := h.libraryUseCase.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *LibraryHandler) Check(c echo.Context) error {
	owned, err := h.libraryUseCase.Owns(c.Request().Context(), middleware.UserID(c), c.Param("gameId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, ownershipResponse{HasGame: owned})
}

func (h *LibraryHandler) Download(c echo.Context) error {
	link, err := h.libraryUseCase.DownloadLink(c.Request().Context(), middleware.UserID(c), c.Param("gameId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, link)
}
