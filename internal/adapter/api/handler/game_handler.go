package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/usecase"
	"thgamestore/pkg/response"
	"thgamestore/pkg/utils"
)

type GameHandler struct {
	gameUseCase *usecase.GameUseCase
}

func NewGameHandler(gameUseCase *usecase.GameUseCase) *GameHandler {
	return &GameHandler{
		gameUseCase: gameUseCase,
	}
}

type gameRequest struct {
	Title            string              `json:"title"`
	Slug             string              `json:"slug"`
	Description      string              `json:"description"`
	Price            float64             `json:"price" validate:"gte=0"`
	DiscountPercent  float64             `json:"discountPercent" validate:"gte=0,lte=100"`
	ThumbnailURL     string              `json:"thumbnailUrl"`
	BannerURL        string              `json:"bannerUrl"`
	TrailerYoutubeID string              `json:"trailerYoutubeId"`
	Genres           []string            `json:"genres"`
	Tags             []string            `json:"tags"`
	MinSpecs         entity.MinSpecs     `json:"minSpecs"`
	ReleaseDate      *time.Time          `json:"releaseDate"`
	Developer        string              `json:"developer"`
	Publisher        string              `json:"publisher"`
	DownloadInfo     entity.DownloadInfo `json:"downloadInfo"`
}

// updateGameRequest keeps absent fields nil so they stay untouched.
type updateGameRequest struct {
	Title            *string              `json:"title"`
	Slug             *string              `json:"slug"`
	Description      *string              `json:"description"`
	Price            *float64             `json:"price" validate:"omitempty,gte=0"`
	DiscountPercent  *float64             `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
	ThumbnailURL     *string              `json:"thumbnailUrl"`
	BannerURL        *string              `json:"bannerUrl"`
	TrailerYoutubeID *string              `json:"trailerYoutubeId"`
	Genres           []string             `json:"genres"`
	Tags             []string             `json:"tags"`
	MinSpecs         *entity.MinSpecs     `json:"minSpecs"`
	ReleaseDate      *time.Time           `json:"releaseDate"`
	Developer        *string              `json:"developer"`
	Publisher        *string              `json:"publisher"`
	DownloadInfo     *entity.DownloadInfo `json:"downloadInfo"`
}

func (h *GameHandler) List(c echo.Context) error {
	p := utils.GetPaginationParams(c, usecase.DefaultGamePageSize)

	page, err := h.gameUseCase.List(c.Request().Context(), usecase.GameQuery{
		Search: c.QueryParam("search"),
		Genre:  c.QueryParam("genre"),
		Tag:    c.QueryParam("tag"),
		Sort:   c.QueryParam("sort"),
		Page:   p.Page,
		Limit:  p.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, page.Games, page.Total, page.Page, page.Limit)
}

func (h *GameHandler) AdminList(c echo.Context) error {
	p := utils.GetPaginationParams(c, usecase.DefaultAdminPageSize)

	page, err := h.gameUseCase.AdminList(c.Request().Context(), c.QueryParam("search"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, page.Games, page.Total, page.Page, page.Limit)
}

func (h *GameHandler) TopSelling(c echo.Context) error {
	games, err := h.gameUseCase.TopSelling(c.Request().Context(), utils.GetLimit(c, usecase.DefaultTopListSize))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, games)
}

func (h *GameHandler) Latest(c echo.Context) error {
	games, err := h.gameUseCase.Latest(c.Request().Context(), utils.GetLimit(c, usecase.DefaultTopListSize))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, games)
}

func (h *GameHandler) FilterOptions(c echo.Context) error {
	options, err := h.gameUseCase.FilterOptions(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, options)
}

func (h *GameHandler) GetBySlug(c echo.Context) error {
	game, err := h.gameUseCase.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, game)
}

func (h *GameHandler) Create(c echo.Context) error {
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	game, err := h.gameUseCase.Create(c.Request().Context(), usecase.GameInput{
		Title:            req.Title,
		Slug:             req.Slug,
		Description:      req.Description,
		Price:            req.Price,
		DiscountPercent:  req.DiscountPercent,
		ThumbnailURL:     req.ThumbnailURL,
		BannerURL:        req.BannerURL,
		TrailerYoutubeID: req.TrailerYoutubeID,
		Genres:           req.Genres,
		Tags:             req.Tags,
		MinSpecs:         req.MinSpecs,
		ReleaseDate:      req.ReleaseDate,
		Developer:        req.Developer,
		Publisher:        req.Publisher,
		DownloadInfo:     req.DownloadInfo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, game)
}

func (h *GameHandler) Update(c echo.Context) error {
	var req updateGameRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	game, err := h.gameUseCase.Update(c.Request().Context(), c.Param("id"), usecase.GameUpdateInput{
		Title:            req.Title,
		Slug:             req.Slug,
		Description:      req.Description,
		Price:            req.Price,
		DiscountPercent:  req.DiscountPercent,
		ThumbnailURL:     req.ThumbnailURL,
		BannerURL:        req.BannerURL,
		TrailerYoutubeID: req.TrailerYoutubeID,
		Genres:           req.Genres,
		Tags:             req.Tags,
		MinSpecs:         req.MinSpecs,
		ReleaseDate:      req.ReleaseDate,
		Developer:        req.Developer,
		Publisher:        req.Publisher,
		DownloadInfo:     req.DownloadInfo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, game)
}

func (h *GameHandler) Delete(c echo.Context) error {
	if err := h.gameUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "Game deleted")
}
