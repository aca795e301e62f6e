package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/logger"
	"thgamestore/pkg/utils"
)

const (
	DefaultGamePageSize  = 12
	DefaultAdminPageSize = 20
	DefaultTopListSize   = 10

	cacheKeyFilterOptions = "games:filters"
)

type GameUseCase struct {
	gameRepo repository.GameRepository
	cache    CatalogCache
}

func NewGameUseCase(gameRepo repository.GameRepository, cache CatalogCache) *GameUseCase {
	return &GameUseCase{
		gameRepo: gameRepo,
		cache:    cache,
	}
}

type GameQuery struct {
	Search string
	Genre  string
	Tag    string
	Sort   string
	Page   int
	Limit  int
}

type GamePage struct {
	Games []*entity.Game
	Total int64
	Page  int
	Limit int
}

type GameInput struct {
	Title            string
	Slug             string
	Description      string
	Price            float64
	DiscountPercent  float64
	ThumbnailURL     string
	BannerURL        string
	TrailerYoutubeID string
	Genres           []string
	Tags             []string
	MinSpecs         entity.MinSpecs
	ReleaseDate      *time.Time
	Developer        string
	Publisher        string
	DownloadInfo     entity.DownloadInfo
}

// GameUpdateInput leaves a field unchanged when it is nil.
type GameUpdateInput struct {
	Title            *string
	Slug             *string
	Description      *string
	Price            *float64
	DiscountPercent  *float64
	ThumbnailURL     *string
	BannerURL        *string
	TrailerYoutubeID *string
	Genres           []string
	Tags             []string
	MinSpecs         *entity.MinSpecs
	ReleaseDate      *time.Time
	Developer        *string
	Publisher        *string
	DownloadInfo     *entity.DownloadInfo
}

func (uc *GameUseCase) List(ctx context.Context, q GameQuery) (*GamePage, error) {
	p := utils.NewPaginationParams(q.Page, q.Limit, DefaultGamePageSize)

	games, total, err := uc.gameRepo.List(ctx, repository.GameFilter{
		Search: strings.TrimSpace(q.Search),
		Genre:  q.Genre,
		Tag:    q.Tag,
		Sort:   entity.ParseGameSort(q.Sort),
		Limit:  p.PageSize,
		Offset: p.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &GamePage{Games: games, Total: total, Page: p.Page, Limit: p.PageSize}, nil
}

// AdminList is the console search: newest first, larger pages.
func (uc *GameUseCase) AdminList(ctx context.Context, search string, page, limit int) (*GamePage, error) {
	if limit <= 0 {
		limit = DefaultAdminPageSize
	}
	return uc.List(ctx, GameQuery{Search: search, Sort: string(entity.SortNewest), Page: page, Limit: limit})
}

func (uc *GameUseCase) GetBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	return uc.gameRepo.GetBySlug(ctx, slug)
}

func (uc *GameUseCase) TopSelling(ctx context.Context, limit int) ([]*entity.Game, error) {
	return uc.cachedTopList(ctx, entity.SortTopSell, limit)
}

func (uc *GameUseCase) Latest(ctx context.Context, limit int) ([]*entity.Game, error) {
	return uc.cachedTopList(ctx, entity.SortNewest, limit)
}

func (uc *GameUseCase) cachedTopList(ctx context.Context, sort entity.GameSort, limit int) ([]*entity.Game, error) {
	if limit <= 0 {
		limit = DefaultTopListSize
	}
	key := fmt.Sprintf("games:top:%s:%d", sort, limit)

	var games []*entity.Game
	if uc.cacheGet(ctx, key, &games) {
		return games, nil
	}

	games, _, err := uc.gameRepo.List(ctx, repository.GameFilter{Sort: sort, Limit: limit})
	if err != nil {
		return nil, err
	}
	uc.cacheSet(ctx, key, games)
	return games, nil
}

// FilterOptions lists every genre and tag in use, each sorted.
func (uc *GameUseCase) FilterOptions(ctx context.Context) (*entity.FilterOptions, error) {
	var opts entity.FilterOptions
	if uc.cacheGet(ctx, cacheKeyFilterOptions, &opts) {
		return &opts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		genres, err := uc.gameRepo.DistinctGenres(gctx)
		opts.Genres = genres
		return err
	})
	g.Go(func() error {
		tags, err := uc.gameRepo.DistinctTags(gctx)
		opts.Tags = tags
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Genres == nil {
		opts.Genres = []string{}
	}
	if opts.Tags == nil {
		opts.Tags = []string{}
	}
	uc.cacheSet(ctx, cacheKeyFilterOptions, opts)
	return &opts, nil
}

func (uc *GameUseCase) Create(ctx context.Context, input GameInput) (*entity.Game, error) {
	game := &entity.Game{
		Title:            strings.TrimSpace(input.Title),
		Slug:             normalizeSlug(input.Slug),
		Description:      input.Description,
		Price:            input.Price,
		DiscountPercent:  input.DiscountPercent,
		ThumbnailURL:     input.ThumbnailURL,
		BannerURL:        input.BannerURL,
		TrailerYoutubeID: input.TrailerYoutubeID,
		Genres:           nonNil(input.Genres),
		Tags:             nonNil(input.Tags),
		MinSpecs:         input.MinSpecs,
		ReleaseDate:      input.ReleaseDate,
		Developer:        input.Developer,
		Publisher:        input.Publisher,
		DownloadInfo:     input.DownloadInfo,
	}
	if err := validateGame(game); err != nil {
		return nil, err
	}
	game.ApplyPricing()

	if err := uc.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return game, nil
}

func (uc *GameUseCase) Update(ctx context.Context, id string, input GameUpdateInput) (*entity.Game, error) {
	game, err := uc.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		game.Title = strings.TrimSpace(*input.Title)
	}
	if input.Slug != nil {
		game.Slug = normalizeSlug(*input.Slug)
	}
	if input.Description != nil {
		game.Description = *input.Description
	}
	if input.Price != nil {
		game.Price = *input.Price
	}
	if input.DiscountPercent != nil {
		game.DiscountPercent = *input.DiscountPercent
	}
	if input.ThumbnailURL != nil {
		game.ThumbnailURL = *input.ThumbnailURL
	}
	if input.BannerURL != nil {
		game.BannerURL = *input.BannerURL
	}
	if input.TrailerYoutubeID != nil {
		game.TrailerYoutubeID = *input.TrailerYoutubeID
	}
	if input.Genres != nil {
		game.Genres = input.Genres
	}
	if input.Tags != nil {
		game.Tags = input.Tags
	}
	if input.MinSpecs != nil {
		game.MinSpecs = *input.MinSpecs
	}
	if input.ReleaseDate != nil {
		game.ReleaseDate = input.ReleaseDate
	}
	if input.Developer != nil {
		game.Developer = *input.Developer
	}
	if input.Publisher != nil {
		game.Publisher = *input.Publisher
	}
	if input.DownloadInfo != nil {
		game.DownloadInfo = *input.DownloadInfo
	}

	if err := validateGame(game); err != nil {
		return nil, err
	}
	game.ApplyPricing()

	if err := uc.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return game, nil
}

func (uc *GameUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.gameRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *GameUseCase) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if uc.cache == nil {
		return false
	}
	hit, err := uc.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("catalog cache read %s: %v", key, err)
		return false
	}
	return hit
}

func (uc *GameUseCase) cacheSet(ctx context.Context, key string, value interface{}) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, value); err != nil {
		logger.Warn("catalog cache write %s: %v", key, err)
	}
}

func (uc *GameUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		logger.Warn("catalog cache invalidate: %v", err)
	}
}

func validateGame(g *entity.Game) error {
	switch {
	case g.Title == "":
		return errors.Validation("title is required")
	case g.Slug == "":
		return errors.Validation("slug is required")
	case g.Description == "":
		return errors.Validation("description is required")
	case g.Price < 0:
		return errors.Validation("price must be at least 0")
	case g.DiscountPercent < 0 || g.DiscountPercent > 100:
		return errors.Validation("discountPercent must be between 0 and 100")
	case g.DownloadInfo.FileSize < 0:
		return errors.Validation("downloadInfo.fileSize must be at least 0")
	}
	return nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
