package entity

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusCancelled = "cancelled"

	DefaultPaymentMethod = "fake"
)

type Order struct {
	ID            string    `json:"id" firestore:"id" bson:"_id"`
	UserID        string    `json:"userId" firestore:"userId" bson:"userId"`
	Status        string    `json:"status" firestore:"status" bson:"status"`
	TotalAmount   float64   `json:"totalAmount" firestore:"totalAmount" bson:"totalAmount"`
	PaymentMethod string    `json:"paymentMethod" firestore:"paymentMethod" bson:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
}

// OrderItem snapshots the unit price at purchase time.
type OrderItem struct {
	ID        string    `json:"id" firestore:"id" bson:"_id"`
	OrderID   string    `json:"orderId" firestore:"orderId" bson:"orderId"`
	GameID    string    `json:"gameId" firestore:"gameId" bson:"gameId"`
	UnitPrice float64   `json:"unitPrice" firestore:"unitPrice" bson:"unitPrice"`
	Quantity  int       `json:"quantity" firestore:"quantity" bson:"quantity"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
}

func (i *OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

type OrderItemDetail struct {
	OrderItem
	Game *GameSummary `json:"game"`
}

type OrderDetail struct {
	Order
	User  *UserSummary      `json:"user,omitempty"`
	Items []OrderItemDetail `json:"items"`
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderPaidEvent struct {
	OrderID       string           `json:"orderId"`
	UserID        string           `json:"userId"`
	TotalAmount   float64          `json:"totalAmount"`
	PaymentMethod string           `json:"paymentMethod"`
	Items         []OrderEventItem `json:"items"`
	PaidAt        time.Time        `json:"paidAt"`
}

type OrderEventItem struct {
	GameID    string  `json:"gameId"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}
