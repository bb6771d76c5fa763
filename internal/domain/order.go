package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusOrderPlaced    OrderStatus = "Order Placed"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

type PaymentState string

const (
	PaymentUnpaid   PaymentState = "Unpaid"
	PaymentPaid     PaymentState = "Paid"
	PaymentRefunded PaymentState = "Refunded"
)

type PaymentMethod string

const (
	MethodCOD      PaymentMethod = "COD"
	MethodStripe   PaymentMethod = "Stripe"
	MethodRazorpay PaymentMethod = "Razorpay"
)

type Actor string

const (
	ActorUser  Actor = "User"
	ActorAdmin Actor = "Admin"
)

// PaymentAction is an admin instruction against an order's payment state.
type PaymentAction string

const (
	ActionMarkAsPaid   PaymentAction = "markAsPaid"
	ActionMarkAsUnpaid PaymentAction = "markAsUnpaid"
	ActionRefund       PaymentAction = "refund"
)

// transitions is the whole status machine. A status absent from a source's
// target list cannot be reached from it; Delivered and Cancelled map to
// nothing and are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusOrderPlaced, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOrderPlaced:    {StatusOrderPlaced, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusShipped:        {StatusOrderPlaced, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusOrderPlaced, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether an order in status from may move to status to.
func CanTransition(from, to OrderStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// ValidMethod reports whether m is a supported payment method.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCOD, MethodStripe, MethodRazorpay:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Price     int64              `json:"price" bson:"price"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	Size      string             `json:"size,omitempty" bson:"size,omitempty"`
}

// Address is a snapshot of the delivery address at order time.
type Address struct {
	Street         string `json:"street" bson:"street"`
	City           string `json:"city" bson:"city"`
	State          string `json:"state" bson:"state"`
	Zipcode        string `json:"zipcode" bson:"zipcode"`
	Country        string `json:"country" bson:"country"`
	Phone          string `json:"phone" bson:"phone"`
	AlternatePhone string `json:"alternatePhone,omitempty" bson:"alternatePhone,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	Items         []OrderItem        `json:"items" bson:"items"`
	Amount        int64              `json:"amount" bson:"amount"`
	Address       Address            `json:"address" bson:"address"`
	PaymentMethod PaymentMethod      `json:"paymentMethod" bson:"paymentMethod"`
	Status        OrderStatus        `json:"status" bson:"status"`
	PaymentState  PaymentState       `json:"paymentState" bson:"paymentState"`
	GatewayRef    string             `json:"gatewayRef,omitempty" bson:"gatewayRef,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	DeliveredAt   *time.Time         `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CancelledAt   *time.Time         `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CancelledBy   Actor              `json:"cancelledBy,omitempty" bson:"cancelledBy,omitempty"`
}

// Paid reports whether payment has been collected.
func (o *Order) Paid() bool { return o.PaymentState == PaymentPaid }

// Refunded reports whether a refund has been issued.
func (o *Order) Refunded() bool { return o.PaymentState == PaymentRefunded }

// Terminal reports whether the status admits no further transitions.
func (o *Order) Terminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}
