package http

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/domain"
)

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name" binding:"required"`
	Price     int64  `json:"price" binding:"required,min=0"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
}

type PlaceOrderRequest struct {
	Items   []OrderItemRequest `json:"items" binding:"required"`
	Address domain.Address     `json:"address" binding:"required"`
}

func (r *PlaceOrderRequest) DomainItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		productID, _ := primitive.ObjectIDFromHex(item.ProductID)
		items = append(items, domain.OrderItem{
			ProductID: productID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}
	return items
}

type VerifyPaymentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Success bool   `json:"success"`
}

type UpdateStatusRequest struct {
	OrderID     string             `json:"orderId" binding:"required"`
	Status      domain.OrderStatus `json:"status" binding:"required"`
	CancelledBy domain.Actor       `json:"cancelledBy"`
}

type UpdatePaymentStatusRequest struct {
	OrderID string               `json:"orderId" binding:"required"`
	Action  domain.PaymentAction `json:"action" binding:"required"`
}

type CancelOrderRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// OrderResponse is the wire shape of an order. payment and refunded are
// derived from the payment state; clients still see the two booleans.
type OrderResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	Items         []domain.OrderItem   `json:"items"`
	Amount        int64                `json:"amount"`
	Address       domain.Address       `json:"address"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Status        domain.OrderStatus   `json:"status"`
	Payment       bool                 `json:"payment"`
	Refunded      bool                 `json:"refunded"`
	CreatedAt     time.Time            `json:"createdAt"`
	DeliveredAt   *time.Time           `json:"deliveryDate,omitempty"`
	CancelledAt   *time.Time           `json:"cancelledDate,omitempty"`
	CancelledBy   domain.Actor         `json:"cancelledBy,omitempty"`
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID.Hex(),
		UserID:        o.UserID.Hex(),
		Items:         o.Items,
		Amount:        o.Amount,
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		Payment:       o.Paid(),
		Refunded:      o.Refunded(),
		CreatedAt:     o.CreatedAt,
		DeliveredAt:   o.DeliveredAt,
		CancelledAt:   o.CancelledAt,
		CancelledBy:   o.CancelledBy,
	}
}

func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

type RegisterRequest struct {
	FirstName string         `json:"first_name" binding:"required"`
	LastName  string         `json:"last_name" binding:"required"`
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required,min=8"`
	Address   domain.Address `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string         `json:"first_name" binding:"required"`
	LastName  string         `json:"last_name" binding:"required"`
	Email     string         `json:"email" binding:"required,email"`
	Address   domain.Address `json:"address"`
}

type UpdateCartRequest struct {
	CartData domain.CartData `json:"cartData" binding:"required"`
}

type SaveProductRequest struct {
	ProductID   string   `json:"productId"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       int64    `json:"price" binding:"required,min=0"`
	OldPrice    int64    `json:"oldPrice"`
	Images      []string `json:"image"`
	Category    []string `json:"category"`
	SubCategory []string `json:"subCategory"`
	Sizes       []string `json:"sizes"`
	Bestseller  bool     `json:"bestseller"`
}

type ProductFlagRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Value     *bool  `json:"value" binding:"required"`
}

type UpdateBusinessRequest struct {
	TotalSales        int64              `json:"totalSales"`
	AvgOrderValue     float64            `json:"avgOrderValue"`
	PaymentMethodPcts map[string]float64 `json:"paymentMethodPercentages"`
}
