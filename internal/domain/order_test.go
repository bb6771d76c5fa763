package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	active := []OrderStatus{StatusPending, StatusOrderPlaced, StatusShipped, StatusOutForDelivery}
	targets := []OrderStatus{StatusOrderPlaced, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled}

	for _, from := range active {
		for _, to := range targets {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
		// Pending is the placement state, never a transition target.
		assert.False(t, CanTransition(from, StatusPending), "%s -> %s", from, StatusPending)
	}

	for _, from := range []OrderStatus{StatusDelivered, StatusCancelled} {
		for _, to := range append(targets, StatusPending) {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition(OrderStatus("Lost"), StatusShipped))
	assert.False(t, CanTransition(StatusPending, OrderStatus("Lost")))
}

func TestValidStatus(t *testing.T) {
	for _, status := range []OrderStatus{StatusPending, StatusOrderPlaced, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(status), string(status))
	}
	assert.False(t, ValidStatus(OrderStatus("pending")))
	assert.False(t, ValidStatus(OrderStatus("")))
}

func TestValidMethod(t *testing.T) {
	for _, method := range []PaymentMethod{MethodCOD, MethodStripe, MethodRazorpay} {
		assert.True(t, ValidMethod(method), string(method))
	}
	assert.False(t, ValidMethod(PaymentMethod("stripe")))
	assert.False(t, ValidMethod(PaymentMethod("")))
}

func TestOrderPaymentFlags(t *testing.T) {
	order := Order{PaymentState: PaymentUnpaid}
	assert.False(t, order.Paid())
	assert.False(t, order.Refunded())

	order.PaymentState = PaymentPaid
	assert.True(t, order.Paid())
	assert.False(t, order.Refunded())

	order.PaymentState = PaymentRefunded
	assert.False(t, order.Paid())
	assert.True(t, order.Refunded())
}

func TestOrderTerminal(t *testing.T) {
	now := time.Now()
	for status, terminal := range map[OrderStatus]bool{
		StatusPending:        false,
		StatusOrderPlaced:    false,
		StatusShipped:        false,
		StatusOutForDelivery: false,
		StatusDelivered:      true,
		StatusCancelled:      true,
	} {
		order := Order{Status: status, CreatedAt: now}
		assert.Equal(t, terminal, order.Terminal(), string(status))
	}
}
