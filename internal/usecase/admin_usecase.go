package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/utils"
)

type AdminUseCase struct {
	userRepo  repository.UserRepository
	gameRepo  repository.GameRepository
	orderRepo repository.OrderRepository
}

func NewAdminUseCase(userRepo repository.UserRepository, gameRepo repository.GameRepository, orderRepo repository.OrderRepository) *AdminUseCase {
	return &AdminUseCase{
		userRepo:  userRepo,
		gameRepo:  gameRepo,
		orderRepo: orderRepo,
	}
}

type DashboardStats struct {
	UserCount    int64   `json:"userCount"`
	GameCount    int64   `json:"gameCount"`
	OrderCount   int64   `json:"orderCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type UserPage struct {
	Users []*entity.User
	Total int64
	Page  int
	Limit int
}

// Dashboard counts users, games and paid orders concurrently.
func (uc *AdminUseCase) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.userRepo.Count(gctx)
		stats.UserCount = n
		return err
	})
	g.Go(func() error {
		n, err := uc.gameRepo.Count(gctx)
		stats.GameCount = n
		return err
	})
	g.Go(func() error {
		n, revenue, err := uc.orderRepo.PaidSummary(gctx)
		stats.OrderCount = n
		stats.TotalRevenue = revenue
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	p := utils.NewPaginationParams(page, limit, DefaultAdminPageSize)
	users, total, err := uc.userRepo.List(ctx, p.PageSize, p.Offset)
	if err != nil {
		return nil, err
	}
	return &UserPage{Users: users, Total: total, Page: p.Page, Limit: p.PageSize}, nil
}

func (uc *AdminUseCase) UpdateUserRole(ctx context.Context, actorID, userID, role string) (*entity.User, error) {
	if !entity.ValidRole(role) {
		return nil, errors.Validation("Invalid role")
	}
	if actorID == userID {
		return nil, errors.BadRequest("You cannot change your own role", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
