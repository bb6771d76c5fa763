package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routing keys for order events on the topic exchange.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
)

type OrderEvent struct {
	OrderID       primitive.ObjectID `json:"orderId"`
	UserID        primitive.ObjectID `json:"userId"`
	Status        OrderStatus        `json:"status"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
	Amount        int64              `json:"amount"`
	OccurredAt    time.Time          `json:"occurredAt"`
}
