package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/domain"
	"shopfront/internal/infra/payment"
	rabbit "shopfront/internal/infra/rabbitmq"
	"shopfront/internal/repository"
)

// CancelWindow is how long after placement a buyer may cancel an order.
const CancelWindow = 24 * time.Hour

// ComputeTotal is the single place the order amount comes from, used at
// placement and whenever the total is recomputed for display.
func ComputeTotal(items []domain.OrderItem, deliveryFee int64) int64 {
	var total int64
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total + deliveryFee
}

type OrderService struct {
	log         *slog.Logger
	orders      repository.OrderRepository
	users       repository.UserRepository
	gateways    map[domain.PaymentMethod]payment.Gateway
	publisher   rabbit.PublisherInterface
	deliveryFee int64
}

func NewOrderService(
	log *slog.Logger,
	orders repository.OrderRepository,
	users repository.UserRepository,
	gateways map[domain.PaymentMethod]payment.Gateway,
	publisher rabbit.PublisherInterface,
	deliveryFee int64,
) *OrderService {
	return &OrderService{
		log:         log,
		orders:      orders,
		users:       users,
		gateways:    gateways,
		publisher:   publisher,
		deliveryFee: deliveryFee,
	}
}

// PlaceOrder creates a new order in Pending/Unpaid state. For COD the buyer's
// cart is cleared immediately; for gateway methods a payment session is
// created and the cart stays until the payment is verified. A gateway failure
// removes the just-created order so no dangling unpaid record persists.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	userID primitive.ObjectID,
	items []domain.OrderItem,
	address domain.Address,
	method domain.PaymentMethod,
	origin string,
) (*domain.Order, *payment.Session, error) {
	if len(items) == 0 {
		return nil, nil, ErrEmptyItems
	}
	if !domain.ValidMethod(method) {
		return nil, nil, ErrInvalidPaymentMethod
	}

	order := &domain.Order{
		UserID:        userID,
		Items:         items,
		Amount:        ComputeTotal(items, s.deliveryFee),
		Address:       address,
		PaymentMethod: method,
		Status:        domain.StatusPending,
		PaymentState:  domain.PaymentUnpaid,
		CreatedAt:     time.Now(),
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, nil, err
	}

	if method == domain.MethodCOD {
		if err := s.users.ClearCart(ctx, userID); err != nil {
			s.log.Error("failed to clear cart after placement", "orderId", order.ID.Hex(), "error", err)
		}
		go s.publishEvent(context.Background(), domain.EventOrderPlaced, order)
		return order, nil, nil
	}

	gw, ok := s.gateways[method]
	if !ok {
		_ = s.orders.Delete(ctx, order.ID)
		return nil, nil, fmt.Errorf("%w: %s gateway not configured", ErrInvalidPaymentMethod, method)
	}

	sess, err := gw.CreateSession(ctx, order, origin)
	if err != nil {
		// Compensate: no pending gateway order may outlive a failed charge setup.
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.log.Error("failed to delete order after gateway failure", "orderId", order.ID.Hex(), "error", delErr)
		}
		return nil, nil, fmt.Errorf("payment gateway: %w", err)
	}

	order.GatewayRef = sess.GatewayRef
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, nil, err
	}

	return order, sess, nil
}

// ConfirmPayment marks an order paid and clears the buyer's cart.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID primitive.ObjectID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	order.PaymentState = domain.PaymentPaid
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.users.ClearCart(ctx, order.UserID); err != nil {
		s.log.Error("failed to clear cart after payment", "orderId", order.ID.Hex(), "error", err)
	}

	go s.publishEvent(context.Background(), domain.EventOrderPlaced, order)

	return order, nil
}

// FailPayment deletes an unconfirmed order so no partial gateway order persists.
func (s *OrderService) FailPayment(ctx context.Context, orderID primitive.ObjectID) error {
	return s.orders.Delete(ctx, orderID)
}

// ResolvePayment finalizes a gateway redirect callback.
func (s *OrderService) ResolvePayment(ctx context.Context, orderID primitive.ObjectID, success bool) (*domain.Order, error) {
	if !success {
		return nil, s.FailPayment(ctx, orderID)
	}
	return s.ConfirmPayment(ctx, orderID)
}

// VerifyGatewayPayment asks the order's gateway whether the charge settled and
// resolves the order accordingly. A gateway error removes the unconfirmed
// order rather than leaving a dangling unpaid record.
func (s *OrderService) VerifyGatewayPayment(ctx context.Context, orderID primitive.ObjectID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	gw, ok := s.gateways[order.PaymentMethod]
	if !ok {
		return nil, fmt.Errorf("%w: %s gateway not configured", ErrInvalidPaymentMethod, order.PaymentMethod)
	}

	paid, err := gw.VerifyPayment(ctx, order)
	if err != nil {
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.log.Error("failed to delete order after verification failure", "orderId", order.ID.Hex(), "error", delErr)
		}
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	if !paid {
		return nil, s.FailPayment(ctx, order.ID)
	}

	return s.ConfirmPayment(ctx, order.ID)
}

// SetStatus applies an admin-driven status transition.
func (s *OrderService) SetStatus(ctx context.Context, orderID primitive.ObjectID, status domain.OrderStatus, actor domain.Actor) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	return s.transition(ctx, order, status, actor)
}

// Cancel is the buyer-initiated cancellation, valid only within CancelWindow
// of placement and never against a terminal order.
func (s *OrderService) Cancel(ctx context.Context, orderID, userID primitive.ObjectID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	if order.Terminal() {
		return nil, &TerminalStateError{Status: order.Status}
	}
	if time.Since(order.CreatedAt) > CancelWindow {
		return nil, ErrCancelWindowClosed
	}

	return s.transition(ctx, order, domain.StatusCancelled, domain.ActorUser)
}

func (s *OrderService) transition(ctx context.Context, order *domain.Order, status domain.OrderStatus, actor domain.Actor) (*domain.Order, error) {
	if !domain.CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	now := time.Now()
	order.Status = status
	switch status {
	case domain.StatusDelivered:
		order.DeliveredAt = &now
	case domain.StatusCancelled:
		order.CancelledAt = &now
		if actor == "" {
			actor = domain.ActorAdmin
		}
		order.CancelledBy = actor
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	event := domain.EventOrderStatusChanged
	if status == domain.StatusCancelled {
		event = domain.EventOrderCancelled
	}
	go s.publishEvent(context.Background(), event, order)

	return order, nil
}

// UpdatePayment applies an admin payment action. A cancelled order only
// accepts a refund; any other order accepts markAsPaid/markAsUnpaid, which
// also clears a stale refund flag. Re-applying the current state succeeds.
func (s *OrderService) UpdatePayment(ctx context.Context, orderID primitive.ObjectID, action domain.PaymentAction) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == domain.StatusCancelled {
		if action != domain.ActionRefund {
			return nil, ErrInvalidPaymentAction
		}
		order.PaymentState = domain.PaymentRefunded
	} else {
		switch action {
		case domain.ActionMarkAsPaid:
			order.PaymentState = domain.PaymentPaid
		case domain.ActionMarkAsUnpaid:
			order.PaymentState = domain.PaymentUnpaid
		default:
			return nil, ErrInvalidPaymentAction
		}
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AllOrders lists every order for the admin panel.
func (s *OrderService) AllOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// UserOrders lists the buyer's own orders.
func (s *OrderService) UserOrders(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) publishEvent(ctx context.Context, routingKey string, order *domain.Order) {
	event := domain.OrderEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Amount:        order.Amount,
		OccurredAt:    time.Now(),
	}

	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.log.Error("failed to publish event", "routingKey", routingKey, "orderId", order.ID.Hex(), "error", err)
	}
}
