package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thgamestore/internal/adapter/api/middleware"
	"thgamestore/internal/usecase"
	"thgamestore/pkg/response"
	"thgamestore/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type upsertReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

func (h *ReviewHandler) ListByGame(c echo.Context) error {
	p := utils.GetPaginationParams(c, usecase.DefaultReviewPageSize)

	page, err := h.reviewUseCase.ListByGame(c.Request().Context(), c.Param("gameId"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, page.Reviews, page.Total, page.Page, page.Limit)
}

// Upsert answers 201 for both a new and a rewritten review.
func (h *ReviewHandler) Upsert(c echo.Context) error {
	var req upsertReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Upsert(c.Request().Context(), middleware.UserID(c), c.Param("gameId"), usecase.UpsertReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}

func (h *ReviewHandler) ListMine(c echo.Context) error {
	reviews, err := h.reviewUseCase.ListMine(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, reviews)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	actor := usecase.Actor{UserID: middleware.UserID(c), Role: middleware.Role(c)}
	if err := h.reviewUseCase.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Review deleted")
}
