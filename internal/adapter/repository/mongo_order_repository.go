package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"thgamestore/internal/domain/entity"
	"thgamestore/internal/domain/repository"
)

type mongoOrderRepository struct {
	orders *mongo.Collection
	items  *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) repository.OrderRepository {
	return &mongoOrderRepository{
		orders: db.Collection(colOrders),
		items:  db.Collection(colOrderItems),
	}
}

func (r *mongoOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.orders.InsertOne(ctx, order)
	return mongoError("Order", err, "")
}

func (r *mongoOrderRepository) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.CreatedAt = now
		docs = append(docs, item)
	}
	_, err := r.items.InsertMany(ctx, docs)
	return mongoError("Order item", err, "")
}

func (r *mongoOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	if err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, mongoError("Order", err, "")
	}
	return &order, nil
}

func (r *mongoOrderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	orders, err := findAll[entity.Order](ctx, r.orders, bson.M{"userId": userID}, options.Find().SetSort(newestFirst()))
	return orders, mongoError("Order", err, "")
}

func (r *mongoOrderRepository) List(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	total, err := r.orders.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, mongoError("Order", err, "")
	}
	orders, err := findAll[entity.Order](ctx, r.orders, bson.M{}, pageOptions(limit, offset).SetSort(newestFirst()))
	if err != nil {
		return nil, 0, mongoError("Order", err, "")
	}
	return orders, total, nil
}

func (r *mongoOrderRepository) ItemsByOrderIDs(ctx context.Context, orderIDs []string) ([]*entity.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []*entity.OrderItem{}, nil
	}
	items, err := findAll[entity.OrderItem](ctx, r.items, bson.M{"orderId": bson.M{"$in": orderIDs}})
	return items, mongoError("Order item", err, "")
}

func (r *mongoOrderRepository) UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}

	var order entity.Order
	if err := r.orders.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order); err != nil {
		return nil, mongoError("Order", err, "")
	}
	return &order, nil
}

func (r *mongoOrderRepository) PaidSummary(ctx context.Context) (int64, float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": entity.OrderStatusPaid}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$totalAmount"},
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, mongoError("Order", err, "")
	}
	defer cur.Close(ctx)

	var rows []struct {
		Count   int64   `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, 0, mongoError("Order", err, "")
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Count, rows[0].Revenue, nil
}
