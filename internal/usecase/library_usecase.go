package usecase

import (
	"context"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

type LibraryUseCase struct {
	libraryRepo repository.LibraryRepository
	gameRepo    repository.GameRepository
}

func NewLibraryUseCase(libraryRepo repository.LibraryRepository, gameRepo repository.GameRepository) *LibraryUseCase {
	return &LibraryUseCase{
		libraryRepo: libraryRepo,
		gameRepo:    gameRepo,
	}
}

func (uc *LibraryUseCase) Owns(ctx context.Context, userID, gameID string) (bool, error) {
	return uc.libraryRepo.Exists(ctx, userID, gameID)
}

// List joins the user's entries with game display fields, most recently
// acquired first.
func (uc *LibraryUseCase) List(ctx context.Context, userID string) ([]*entity.LibraryItem, error) {
	entries, err := uc.libraryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	games, err := gameIndex(ctx, uc.gameRepo, uniqueIDs(len(entries), func(i int) string { return entries[i].GameID }))
	if err != nil {
		return nil, err
	}

	items := make([]*entity.LibraryItem, 0, len(entries))
	for _, e := range entries {
		item := &entity.LibraryItem{
			LibraryID:  e.ID,
			AcquiredAt: e.AcquiredAt,
			Source:     e.Source,
		}
		if g, ok := games[e.GameID]; ok {
			item.Game = g.Summary()
			info := g.DownloadInfo
			item.Game.DownloadInfo = &info
		}
		items = append(items, item)
	}
	return items, nil
}

func (uc *LibraryUseCase) DownloadLink(ctx context.Context, userID, gameID string) (*entity.DownloadLink, error) {
	owned, err := uc.Owns(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.Forbidden("You do not own this game", nil)
	}

	game, err := uc.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NotFound("Download info", nil)
		}
		return nil, err
	}
	if !game.HasDownload() {
		return nil, errors.NotFound("Download info", nil)
	}

	return &entity.DownloadLink{
		DownloadURL: game.DownloadInfo.DownloadURL,
		FileSize:    game.DownloadInfo.FileSize,
		FileType:    game.DownloadInfo.FileType,
	}, nil
}
