package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"thgamestore/internal/usecase"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/response"
)

const imageFormField = "image"

type UploadHandler struct {
	mediaUseCase *usecase.MediaUseCase
}

func NewUploadHandler(mediaUseCase *usecase.MediaUseCase) *UploadHandler {
	return &UploadHandler{
		mediaUseCase: mediaUseCase,
	}
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile(imageFormField)
	if err != nil {
		return response.Error(c, errors.BadRequest("No file uploaded", err))
	}
	if file.Size > usecase.MaxImageUploadMB<<20 {
		return response.Error(c, errors.BadRequest("File too large", nil))
	}
	if !strings.HasPrefix(file.Header.Get(echo.HeaderContentType), "image/") {
		return response.Error(c, errors.BadRequest("Only image files are allowed", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Upload failed", err))
	}
	defer src.Close()

	uploaded, err := h.mediaUseCase.UploadGameImage(c.Request().Context(), src)
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(http.StatusOK, uploaded)
}
