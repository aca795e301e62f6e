package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedChargeSettles(t *testing.T) {
	svc := NewSimulatedPaymentService()

	res, err := svc.Charge(context.Background(), PaymentRequest{UserID: "u1", Amount: 0, PaymentMethod: "fake"})
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusSettled, res.Status)
	assert.True(t, strings.HasPrefix(res.Reference, "SIM-"))
	assert.False(t, res.PaidAt.IsZero())

	_, err = svc.Charge(context.Background(), PaymentRequest{Amount: -1})
	assert.Error(t, err)
}
