package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"shopfront/internal/domain"
)

type StripeGateway struct {
	api      *client.API
	currency string
}

func NewStripeGateway(secretKey, currency string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, currency: currency}
}

// CreateSession builds a hosted checkout session with one line item per
// order item plus the delivery charge.
func (g *StripeGateway) CreateSession(ctx context.Context, order *domain.Order, origin string) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.Items)+1)
	var itemsTotal int64
	for _, item := range order.Items {
		itemsTotal += item.Price * item.Quantity
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.Price * 100),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	if fee := order.Amount - itemsTotal; fee > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Delivery Charges"),
				},
				UnitAmount: stripe.Int64(fee * 100),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(fmt.Sprintf("%s/verify?success=true&orderId=%s", origin, order.ID.Hex())),
		CancelURL:  stripe.String(fmt.Sprintf("%s/verify?success=false&orderId=%s", origin, order.ID.Hex())),
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
	}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}

	return &Session{URL: sess.URL, GatewayRef: sess.ID}, nil
}

func (g *StripeGateway) VerifyPayment(ctx context.Context, order *domain.Order) (bool, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.Get(order.GatewayRef, params)
	if err != nil {
		return false, fmt.Errorf("stripe: fetch checkout session: %w", err)
	}

	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

var _ Gateway = (*StripeGateway)(nil)
