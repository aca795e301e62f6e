package usecase

import (
	"context"
	"time"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/internal/domain/service"
	"thgamestore/pkg/errors"
	"thgamestore/pkg/logger"
	"thgamestore/pkg/utils"
)

const (
	CheckoutMessage = "Order created & games added to library"

	CheckoutOutcomeSuccess  = "success"
	CheckoutOutcomeRejected = "rejected"
	CheckoutOutcomeFailed   = "failed"
)

type OrderUseCase struct {
	gameRepo    repository.GameRepository
	orderRepo   repository.OrderRepository
	libraryRepo repository.LibraryRepository
	userRepo    repository.UserRepository
	tx          repository.Transactor
	payments    service.PaymentService
	events      EventPublisher
	observer    CheckoutObserver
}

func NewOrderUseCase(
	gameRepo repository.GameRepository,
	orderRepo repository.OrderRepository,
	libraryRepo repository.LibraryRepository,
	userRepo repository.UserRepository,
	tx repository.Transactor,
	payments service.PaymentService,
	events EventPublisher,
	observer CheckoutObserver,
) *OrderUseCase {
	return &OrderUseCase{
		gameRepo:    gameRepo,
		orderRepo:   orderRepo,
		libraryRepo: libraryRepo,
		userRepo:    userRepo,
		tx:          tx,
		payments:    payments,
		events:      events,
		observer:    observer,
	}
}

type CheckoutItem struct {
	GameID   string
	Quantity int
}

type CheckoutInput struct {
	Items         []CheckoutItem
	PaymentMethod string
}

type CheckoutResult struct {
	Message     string  `json:"message"`
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}

// Checkout prices the cart, records a paid order with its items, bumps sold
// counters and grants library entries. Validation runs before any write.
func (uc *OrderUseCase) Checkout(ctx context.Context, userID string, input CheckoutInput) (*CheckoutResult, error) {
	lines, err := normalizeCheckoutItems(input.Items)
	if err != nil {
		uc.observe(CheckoutOutcomeRejected, 0, 0)
		return nil, err
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.GameID
	}
	games, err := gameIndex(ctx, uc.gameRepo, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := games[id]; !ok {
			uc.observe(CheckoutOutcomeRejected, 0, 0)
			return nil, errors.NotFound("Some games", nil)
		}
	}

	items := make([]*entity.OrderItem, len(lines))
	var total float64
	for i, line := range lines {
		items[i] = &entity.OrderItem{
			GameID:    line.GameID,
			UnitPrice: games[line.GameID].UnitPrice(),
			Quantity:  line.Quantity,
		}
		total += items[i].LineTotal()
	}

	method := input.PaymentMethod
	if method == "" {
		method = entity.DefaultPaymentMethod
	}
	payment, err := uc.payments.Charge(ctx, service.PaymentRequest{UserID: userID, Amount: total, PaymentMethod: method})
	if err != nil {
		uc.observe(CheckoutOutcomeFailed, total, len(items))
		return nil, errors.Internal("Payment failed", err)
	}

	order := &entity.Order{}
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// The callback may be retried on transient transaction errors, so
		// everything it writes is rebuilt from scratch each time.
		*order = entity.Order{
			UserID:        userID,
			Status:        entity.OrderStatusPaid,
			TotalAmount:   total,
			PaymentMethod: method,
		}
		if err := uc.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		for _, item := range items {
			item.ID = ""
			item.OrderID = order.ID
		}
		if err := uc.orderRepo.CreateItems(ctx, items); err != nil {
			return err
		}

		acquiredAt := time.Now()
		for _, item := range items {
			if err := uc.gameRepo.IncrementSoldCount(ctx, item.GameID, item.Quantity); err != nil {
				return err
			}
			if _, err := uc.libraryRepo.GrantIfAbsent(ctx, &entity.LibraryEntry{
				UserID:     userID,
				GameID:     item.GameID,
				AcquiredAt: acquiredAt,
				Source:     entity.LibrarySourcePurchase,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.observe(CheckoutOutcomeFailed, total, len(items))
		logger.WithFields(map[string]interface{}{
			"userId":  userID,
			"orderId": order.ID,
			"payment": payment.Reference,
		}).Errorf("checkout failed after payment: %v", err)
		return nil, errors.Internal("Failed to complete checkout", err)
	}

	uc.observe(CheckoutOutcomeSuccess, total, len(items))
	uc.publishPaid(ctx, order, items, payment.PaidAt)

	return &CheckoutResult{
		Message:     CheckoutMessage,
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
	}, nil
}

// normalizeCheckoutItems applies the quantity default and rejects empty
// carts, blank ids, negative quantities and repeated games.
func normalizeCheckoutItems(items []CheckoutItem) ([]CheckoutItem, error) {
	if len(items) == 0 {
		return nil, errors.Validation("Order items are required")
	}

	seen := make(map[string]bool, len(items))
	lines := make([]CheckoutItem, 0, len(items))
	for _, item := range items {
		if item.GameID == "" {
			return nil, errors.Validation("gameId is required")
		}
		if item.Quantity < 0 {
			return nil, errors.Validation("quantity must be at least 1")
		}
		if seen[item.GameID] {
			return nil, errors.Validation("Duplicate game in order")
		}
		seen[item.GameID] = true

		if item.Quantity == 0 {
			item.Quantity = 1
		}
		lines = append(lines, item)
	}
	return lines, nil
}

func (uc *OrderUseCase) publishPaid(ctx context.Context, order *entity.Order, items []*entity.OrderItem, paidAt time.Time) {
	if uc.events == nil {
		return
	}
	event := entity.OrderPaidEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		PaidAt:        paidAt,
	}
	for _, item := range items {
		event.Items = append(event.Items, entity.OrderEventItem{
			GameID:    item.GameID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	if err := uc.events.PublishOrderPaid(ctx, event); err != nil {
		logger.Warn("publish order %s: %v", order.ID, err)
	}
}

func (uc *OrderUseCase) observe(outcome string, amount float64, items int) {
	if uc.observer != nil {
		uc.observer.ObserveCheckout(outcome, amount, items)
	}
}

// ListMyOrders returns the user's orders newest first with their items.
func (uc *OrderUseCase) ListMyOrders(ctx context.Context, userID string) ([]*entity.OrderDetail, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.details(ctx, orders, false)
}

type OrderPage struct {
	Orders []*entity.OrderDetail
	Total  int64
	Page   int
	Limit  int
}

func (uc *OrderUseCase) AdminList(ctx context.Context, page, limit int) (*OrderPage, error) {
	p := utils.NewPaginationParams(page, limit, DefaultAdminPageSize)

	orders, total, err := uc.orderRepo.List(ctx, p.PageSize, p.Offset)
	if err != nil {
		return nil, err
	}
	details, err := uc.details(ctx, orders, true)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: details, Total: total, Page: p.Page, Limit: p.PageSize}, nil
}

func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, errors.Validation("Invalid status")
	}
	return uc.orderRepo.UpdateStatus(ctx, orderID, status)
}

func (uc *OrderUseCase) details(ctx context.Context, orders []*entity.Order, withUser bool) ([]*entity.OrderDetail, error) {
	out := make([]*entity.OrderDetail, 0, len(orders))
	if len(orders) == 0 {
		return out, nil
	}

	orderIDs := make([]string, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}
	items, err := uc.orderRepo.ItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	games, err := gameIndex(ctx, uc.gameRepo, uniqueIDs(len(items), func(i int) string { return items[i].GameID }))
	if err != nil {
		return nil, err
	}

	users := map[string]*entity.User{}
	if withUser {
		users, err = userIndex(ctx, uc.userRepo, uniqueIDs(len(orders), func(i int) string { return orders[i].UserID }))
		if err != nil {
			return nil, err
		}
	}

	byOrder := make(map[string][]entity.OrderItemDetail, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], entity.OrderItemDetail{
			OrderItem: *item,
			Game:      summaryOf(games[item.GameID]),
		})
	}

	for _, o := range orders {
		detail := &entity.OrderDetail{Order: *o, Items: byOrder[o.ID]}
		if detail.Items == nil {
			detail.Items = []entity.OrderItemDetail{}
		}
		if withUser {
			detail.User = userSummaryOf(users[o.UserID])
		}
		out = append(out, detail)
	}
	return out, nil
}
