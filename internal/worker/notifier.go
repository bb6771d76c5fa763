package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"shopfront/internal/domain"
	"shopfront/internal/infra/mailer"
	"shopfront/internal/repository"
)

// EventSource delivers order events until the context is done.
type EventSource interface {
	Consume(ctx context.Context, handle func(routingKey string, body []byte) error) error
}

// Notifier turns order events into transactional emails.
type Notifier struct {
	log    *slog.Logger
	source EventSource
	users  repository.UserRepository
	mail   mailer.Mailer
}

func NewNotifier(log *slog.Logger, source EventSource, users repository.UserRepository, mail mailer.Mailer) *Notifier {
	return &Notifier{log: log, source: source, users: users, mail: mail}
}

func (n *Notifier) Run(ctx context.Context) error {
	return n.source.Consume(ctx, n.handle)
}

func (n *Notifier) handle(routingKey string, body []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		n.log.Error("failed to decode order event", "routingKey", routingKey, "error", err)
		// Poison message, do not requeue.
		return nil
	}

	user, err := n.users.FindByID(context.Background(), event.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		n.log.Warn("order event for unknown user", "orderId", event.OrderID.Hex())
		return nil
	}

	subject, text := composeMessage(routingKey, event)
	if subject == "" {
		return nil
	}

	if err := n.mail.Send(context.Background(), user.Email, subject, text, "<p>"+text+"</p>"); err != nil {
		return err
	}

	n.log.Info("notification sent", "routingKey", routingKey, "orderId", event.OrderID.Hex())
	return nil
}

func composeMessage(routingKey string, event domain.OrderEvent) (subject, text string) {
	switch routingKey {
	case domain.EventOrderPlaced:
		return "Your order has been placed",
			fmt.Sprintf("Thank you for your order %s. Total amount: %d. Payment method: %s.",
				event.OrderID.Hex(), event.Amount, event.PaymentMethod)
	case domain.EventOrderCancelled:
		return "Your order has been cancelled",
			fmt.Sprintf("Order %s has been cancelled.", event.OrderID.Hex())
	case domain.EventOrderStatusChanged:
		return "Your order status has changed",
			fmt.Sprintf("Order %s is now: %s.", event.OrderID.Hex(), event.Status)
	}
	return "", ""
}
