package payment

import (
	"context"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"

	"shopfront/internal/domain"
)

type RazorpayGateway struct {
	client   *razorpay.Client
	currency string
}

func NewRazorpayGateway(keyID, keySecret, currency string) *RazorpayGateway {
	return &RazorpayGateway{
		client:   razorpay.NewClient(keyID, keySecret),
		currency: strings.ToUpper(currency),
	}
}

// CreateSession creates a Razorpay order carrying our order id as the
// receipt. Razorpay checkout opens client-side, so no redirect URL.
func (g *RazorpayGateway) CreateSession(_ context.Context, order *domain.Order, _ string) (*Session, error) {
	data := map[string]interface{}{
		"amount":   order.Amount * 100,
		"currency": g.currency,
		"receipt":  order.ID.Hex(),
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}

	ref, _ := body["id"].(string)
	if ref == "" {
		return nil, fmt.Errorf("razorpay: order response missing id")
	}

	return &Session{GatewayRef: ref}, nil
}

func (g *RazorpayGateway) VerifyPayment(_ context.Context, order *domain.Order) (bool, error) {
	body, err := g.client.Order.Fetch(order.GatewayRef, nil, nil)
	if err != nil {
		return false, fmt.Errorf("razorpay: fetch order: %w", err)
	}

	status, _ := body["status"].(string)
	return status == "paid", nil
}

var _ Gateway = (*RazorpayGateway)(nil)
