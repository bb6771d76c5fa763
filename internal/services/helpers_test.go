package services

import (
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/domain"
	"shopfront/internal/infra/payment"
	"shopfront/internal/mocks"
)

const TestDeliveryFee = int64(10)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(
	orders *mocks.MockOrderRepository,
	users *mocks.MockUserRepository,
	gateways map[domain.PaymentMethod]payment.Gateway,
	publisher *mocks.MockPublisher,
) *OrderService {
	return NewOrderService(newTestLogger(), orders, users, gateways, publisher, TestDeliveryFee)
}

func newTestOrder(status domain.OrderStatus, state domain.PaymentState, age time.Duration) *domain.Order {
	return &domain.Order{
		ID:            primitive.NewObjectID(),
		UserID:        primitive.NewObjectID(),
		Items:         testItems(),
		Amount:        ComputeTotal(testItems(), TestDeliveryFee),
		PaymentMethod: domain.MethodCOD,
		Status:        status,
		PaymentState:  state,
		CreatedAt:     time.Now().Add(-age),
	}
}

func testItems() []domain.OrderItem {
	return []domain.OrderItem{
		{ProductID: primitive.NewObjectID(), Name: "Graphic Tee", Price: 100, Quantity: 2, Size: "M"},
		{ProductID: primitive.NewObjectID(), Name: "Canvas Tote", Price: 50, Quantity: 1},
	}
}

func testAddress() domain.Address {
	return domain.Address{
		Street:  "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Zipcode: "560001",
		Country: "India",
		Phone:   "9999999999",
	}
}
