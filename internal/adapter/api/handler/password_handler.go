package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thgamestore/internal/usecase"
	"thgamestore/pkg/response"
)

type PasswordHandler struct {
	passwordUseCase *usecase.PasswordUseCase
}

func NewPasswordHandler(passwordUseCase *usecase.PasswordUseCase) *PasswordHandler {
	return &PasswordHandler{
		passwordUseCase: passwordUseCase,
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *PasswordHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.passwordUseCase.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Password reset email sent")
}

func (h *PasswordHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.passwordUseCase.ResetPassword(c.Request().Context(), usecase.ResetPasswordInput{
		Email:    req.Email,
		Token:    req.Token,
		Password: req.NewPassword,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Password has been reset")
}
