package payment

import (
	"context"

	"shopfront/internal/domain"
)

// Session is a gateway-side payment handle created for an order.
type Session struct {
	// URL is the hosted checkout page the buyer is redirected to.
	// Empty for gateways that collect payment client-side.
	URL string
	// GatewayRef is the gateway's reference for the charge, used to
	// verify payment later.
	GatewayRef string
}

type Gateway interface {
	// CreateSession initiates a charge for an unpaid order. origin is the
	// storefront base URL used to build redirect URLs.
	CreateSession(ctx context.Context, order *domain.Order, origin string) (*Session, error)
	// VerifyPayment asks the gateway whether the order's charge settled.
	VerifyPayment(ctx context.Context, order *domain.Order) (bool, error)
}
