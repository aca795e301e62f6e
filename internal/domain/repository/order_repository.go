package repository

import (
	"context"

	"thgamestore/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItems(ctx context.Context, items []*entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error)
	ItemsByOrderIDs(ctx context.Context, orderIDs []string) ([]*entity.OrderItem, error)
	UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error)
	// PaidSummary counts paid orders and sums their totals.
	PaidSummary(ctx context.Context) (count int64, revenue float64, err error)
}
