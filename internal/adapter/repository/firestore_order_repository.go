package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
	"thgamestore/pkg/errors"
)

// Firestore caps "in" filters at 30 values.
const firestoreInLimit = 30

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{client: client}
}

func (r *firestoreOrderRepository) orders() *firestore.CollectionRef {
	return r.client.Collection(colOrders)
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.orders().Doc(order.ID).Create(ctx, order)
	return firestoreError("Order", err, "")
}

func (r *firestoreOrderRepository) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.CreatedAt = now
		job, err := bw.Create(r.client.Collection(colOrderItems).Doc(item.ID), item)
		if err != nil {
			bw.End()
			return firestoreError("Order item", err, "")
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return firestoreError("Order item", err, "")
		}
	}
	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.orders().Doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreError("Order", err, "")
	}
	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	return &order, nil
}

func (r *firestoreOrderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	q := r.orders().Where("userId", "==", userID).OrderBy("createdAt", firestore.Desc)
	orders, err := docsTo[entity.Order](q.Documents(ctx))
	return orders, firestoreError("Order", err, "")
}

func (r *firestoreOrderRepository) List(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	total, err := countQuery(ctx, r.orders().Query)
	if err != nil {
		return nil, 0, firestoreError("Order", err, "")
	}
	q := pageQuery(r.orders().OrderBy("createdAt", firestore.Desc), limit, offset)
	orders, err := docsTo[entity.Order](q.Documents(ctx))
	if err != nil {
		return nil, 0, firestoreError("Order", err, "")
	}
	return orders, total, nil
}

func (r *firestoreOrderRepository) ItemsByOrderIDs(ctx context.Context, orderIDs []string) ([]*entity.OrderItem, error) {
	items := make([]*entity.OrderItem, 0)
	for start := 0; start < len(orderIDs); start += firestoreInLimit {
		end := start + firestoreInLimit
		if end > len(orderIDs) {
			end = len(orderIDs)
		}
		q := r.client.Collection(colOrderItems).Where("orderId", "in", orderIDs[start:end])
		batch, err := docsTo[entity.OrderItem](q.Documents(ctx))
		if err != nil {
			return nil, firestoreError("Order item", err, "")
		}
		items = append(items, batch...)
	}
	return items, nil
}

func (r *firestoreOrderRepository) UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	_, err := r.orders().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return nil, firestoreError("Order", err, "")
	}
	return r.GetByID(ctx, id)
}

func (r *firestoreOrderRepository) PaidSummary(ctx context.Context) (int64, float64, error) {
	q := r.orders().Where("status", "==", entity.OrderStatusPaid).Select("totalAmount")
	orders, err := docsTo[entity.Order](q.Documents(ctx))
	if err != nil {
		return 0, 0, firestoreError("Order", err, "")
	}

	var revenue float64
	for _, o := range orders {
		revenue += o.TotalAmount
	}
	return int64(len(orders)), revenue, nil
}
