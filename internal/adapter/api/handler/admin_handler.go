package handler

import (
	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/middleware"
	"thgamestore/internal/usecase"
	"thgamestore/pkg/response"
	"thgamestore/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.adminUseCase.Dashboard(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	p := utils.GetPaginationParams(c, usecase.DefaultAdminPageSize)

	page, err := h.adminUseCase.ListUsers(c.Request().Context(), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, page.Users, page.Total, page.Page, page.Limit)
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.UpdateUserRole(c.Request().Context(), middleware.UserID(c), c.Param("id"), req.Role)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
