package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
	"thgamestore/pkg/errors"
)

type orderRecord struct {
	order entity.Order
	seq   int64
}

type orderRepository struct {
	s *Store
}

func (r *orderRepository) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	r.s.orders[order.ID] = orderRecord{order: *order, seq: r.s.nextSeqLocked()}
	return nil
}

func (r *orderRepository) CreateItems(_ context.Context, items []*entity.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for _, item := range items {
		if _, ok := r.s.orders[item.OrderID]; !ok {
			return errors.NotFound("Order", nil)
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.CreatedAt = now
		r.s.orderItems = append(r.s.orderItems, *item)
	}
	return nil
}

func (r *orderRepository) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	order := rec.order
	return &order, nil
}

func (r *orderRepository) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := r.sortedLocked(func(o entity.Order) bool { return o.UserID == userID })
	orders := make([]*entity.Order, 0, len(records))
	for _, rec := range records {
		order := rec.order
		orders = append(orders, &order)
	}
	return orders, nil
}

func (r *orderRepository) List(_ context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := r.sortedLocked(func(entity.Order) bool { return true })
	w := paginate(len(records), offset, limit)
	orders := make([]*entity.Order, 0, w.end-w.start)
	for _, rec := range records[w.start:w.end] {
		order := rec.order
		orders = append(orders, &order)
	}
	return orders, int64(len(records)), nil
}

func (r *orderRepository) sortedLocked(keep func(entity.Order) bool) []orderRecord {
	records := make([]orderRecord, 0, len(r.s.orders))
	for _, rec := range r.s.orders {
		if keep(rec.order) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return newerFirst(records[i].order.CreatedAt, records[i].seq, records[j].order.CreatedAt, records[j].seq)
	})
	return records
}

func (r *orderRepository) ItemsByOrderIDs(_ context.Context, orderIDs []string) ([]*entity.OrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}
	var items []*entity.OrderItem
	for _, item := range r.s.orderItems {
		if wanted[item.OrderID] {
			it := item
			items = append(items, &it)
		}
	}
	return items, nil
}

func (r *orderRepository) UpdateStatus(_ context.Context, id, status string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	rec.order.Status = status
	rec.order.UpdatedAt = time.Now()
	r.s.orders[id] = rec

	order := rec.order
	return &order, nil
}

func (r *orderRepository) PaidSummary(_ context.Context) (int64, float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	var revenue float64
	for _, rec := range r.s.orders {
		if rec.order.Status == entity.OrderStatusPaid {
			count++
			revenue += rec.order.TotalAmount
		}
	}
	return count, revenue, nil
}
