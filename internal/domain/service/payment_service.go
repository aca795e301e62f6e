package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentRequest struct {
	UserID        string
	Amount        float64
	PaymentMethod string
}

type PaymentResult struct {
	Reference string
	Status    string
	PaidAt    time.Time
}

const PaymentStatusSettled = "settlement"

type PaymentService interface {
	Charge(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
}

// SimulatedPaymentService settles every charge immediately. There is no
// gateway behind it.
type SimulatedPaymentService struct{}

func NewSimulatedPaymentService() *SimulatedPaymentService {
	return &SimulatedPaymentService{}
}

func (s *SimulatedPaymentService) Charge(_ context.Context, req PaymentRequest) (*PaymentResult, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("negative amount %.2f", req.Amount)
	}
	return &PaymentResult{
		Reference: "SIM-" + uuid.New().String(),
		Status:    PaymentStatusSettled,
		PaidAt:    time.Now(),
	}, nil
}
