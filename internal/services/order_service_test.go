package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/domain"
	"shopfront/internal/infra/payment"
	"shopfront/internal/mocks"
)

func TestComputeTotal(t *testing.T) {
	items := []domain.OrderItem{
		{Name: "Graphic Tee", Price: 100, Quantity: 2},
		{Name: "Canvas Tote", Price: 50, Quantity: 1},
	}

	assert.Equal(t, int64(260), ComputeTotal(items, 10))
	assert.Equal(t, int64(10), ComputeTotal(nil, 10))

	// Recomputing from the same stored items must match the placement total.
	order := newTestOrder(domain.StatusPending, domain.PaymentUnpaid, 0)
	assert.Equal(t, order.Amount, ComputeTotal(order.Items, TestDeliveryFee))
}

func TestOrderService_PlaceOrder_COD(t *testing.T) {
	tests := []struct {
		name          string
		items         []domain.OrderItem
		method        domain.PaymentMethod
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockUserRepository, *mocks.MockPublisher)
		expectedError error
	}{
		{
			name:   "successful COD placement clears cart",
			items:  testItems(),
			method: domain.MethodCOD,
			setupMocks: func(orders *mocks.MockOrderRepository, users *mocks.MockUserRepository, pub *mocks.MockPublisher) {
				orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
				users.On("ClearCart", mock.Anything, mock.AnythingOfType("primitive.ObjectID")).Return(nil)
				pub.On("Publish", mock.Anything, domain.EventOrderPlaced, mock.Anything).Return(nil).Maybe()
			},
		},
		{
			name:          "empty items rejected",
			items:         nil,
			method:        domain.MethodCOD,
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockUserRepository, *mocks.MockPublisher) {},
			expectedError: ErrEmptyItems,
		},
		{
			name:          "unknown payment method rejected",
			items:         testItems(),
			method:        domain.PaymentMethod("Barter"),
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockUserRepository, *mocks.MockPublisher) {},
			expectedError: ErrInvalidPaymentMethod,
		},
		{
			name:   "repository error propagates",
			items:  testItems(),
			method: domain.MethodCOD,
			setupMocks: func(orders *mocks.MockOrderRepository, users *mocks.MockUserRepository, pub *mocks.MockPublisher) {
				orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			users := new(mocks.MockUserRepository)
			publisher := new(mocks.MockPublisher)
			tt.setupMocks(orders, users, publisher)

			service := newTestService(orders, users, nil, publisher)
			order, sess, err := service.PlaceOrder(context.Background(), primitive.NewObjectID(), tt.items, testAddress(), tt.method, "")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, order)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, order)
			assert.Nil(t, sess)
			assert.Equal(t, int64(260), order.Amount)
			assert.Equal(t, domain.StatusPending, order.Status)
			assert.Equal(t, domain.PaymentUnpaid, order.PaymentState)
			assert.False(t, order.Paid())
			assert.False(t, order.Refunded())
			assert.WithinDuration(t, time.Now(), order.CreatedAt, time.Second)

			time.Sleep(100 * time.Millisecond)
			orders.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestOrderService_PlaceOrder_Gateway(t *testing.T) {
	t.Run("session created and reference persisted", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		users := new(mocks.MockUserRepository)
		publisher := new(mocks.MockPublisher)
		gateway := new(mocks.MockGateway)

		orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
		gateway.On("CreateSession", mock.Anything, mock.AnythingOfType("*domain.Order"), "https://shop.example").
			Return(&payment.Session{URL: "https://checkout.example/s/1", GatewayRef: "cs_123"}, nil)
		orders.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

		service := newTestService(orders, users, map[domain.PaymentMethod]payment.Gateway{domain.MethodStripe: gateway}, publisher)
		order, sess, err := service.PlaceOrder(context.Background(), primitive.NewObjectID(), testItems(), testAddress(), domain.MethodStripe, "https://shop.example")

		assert.NoError(t, err)
		assert.Equal(t, "cs_123", order.GatewayRef)
		assert.Equal(t, "https://checkout.example/s/1", sess.URL)
		// Cart stays until the payment is verified.
		users.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
		orders.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("gateway failure deletes the order", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		users := new(mocks.MockUserRepository)
		publisher := new(mocks.MockPublisher)
		gateway := new(mocks.MockGateway)

		orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
		gateway.On("CreateSession", mock.Anything, mock.AnythingOfType("*domain.Order"), mock.Anything).
			Return(nil, errors.New("gateway unreachable"))
		orders.On("Delete", mock.Anything, mock.AnythingOfType("primitive.ObjectID")).Return(nil)

		service := newTestService(orders, users, map[domain.PaymentMethod]payment.Gateway{domain.MethodRazorpay: gateway}, publisher)
		order, _, err := service.PlaceOrder(context.Background(), primitive.NewObjectID(), testItems(), testAddress(), domain.MethodRazorpay, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gateway unreachable")
		assert.Nil(t, order)
		orders.AssertExpectations(t)
	})
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	t.Run("marks order paid and clears cart", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		users := new(mocks.MockUserRepository)
		publisher := new(mocks.MockPublisher)

		existing := newTestOrder(domain.StatusPending, domain.PaymentUnpaid, 0)
		orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		orders.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
		users.On("ClearCart", mock.Anything, existing.UserID).Return(nil)
		publisher.On("Publish", mock.Anything, domain.EventOrderPlaced, mock.Anything).Return(nil).Maybe()

		service := newTestService(orders, users, nil, publisher)
		order, err := service.ConfirmPayment(context.Background(), existing.ID)

		assert.NoError(t, err)
		assert.True(t, order.Paid())

		time.Sleep(100 * time.Millisecond)
		orders.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("missing order", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		orders.On("FindByID", mock.Anything, mock.AnythingOfType("primitive.ObjectID")).Return(nil, nil)

		service := newTestService(orders, new(mocks.MockUserRepository), nil, new(mocks.MockPublisher))
		_, err := service.ConfirmPayment(context.Background(), primitive.NewObjectID())

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestOrderService_VerifyGatewayPayment(t *testing.T) {
	newService := func(existing *domain.Order, gateway *mocks.MockGateway) (*OrderService, *mocks.MockOrderRepository, *mocks.MockUserRepository) {
		orders := new(mocks.MockOrderRepository)
		users := new(mocks.MockUserRepository)
		publisher := new(mocks.MockPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
		orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		gateways := map[domain.PaymentMethod]payment.Gateway{existing.PaymentMethod: gateway}
		return newTestService(orders, users, gateways, publisher), orders, users
	}

	t.Run("settled charge confirms the order", func(t *testing.T) {
		existing := newTestOrder(domain.StatusPending, domain.PaymentUnpaid, 0)
		existing.PaymentMethod = domain.MethodRazorpay
		existing.GatewayRef = "order_abc"

		gateway := new(mocks.MockGateway)
		gateway.On("VerifyPayment", mock.Anything, existing).Return(true, nil)

		service, orders, users := newService(existing, gateway)
		orders.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
		users.On("ClearCart", mock.Anything, existing.UserID).Return(nil)

		order, err := service.VerifyGatewayPayment(context.Background(), existing.ID)

		assert.NoError(t, err)
		assert.True(t, order.Paid())
		time.Sleep(100 * time.Millisecond)
		orders.AssertExpectations(t)
	})

	t.Run("unsettled charge deletes the order", func(t *testing.T) {
		existing := newTestOrder(domain.StatusPending, domain.PaymentUnpaid, 0)
		existing.PaymentMethod = domain.MethodRazorpay

		gateway := new(mocks.MockGateway)
		gateway.On("VerifyPayment", mock.Anything, existing).Return(false, nil)

		service, orders, _ := newService(existing, gateway)
		orders.On("Delete", mock.Anything, existing.ID).Return(nil)

		order, err := service.VerifyGatewayPayment(context.Background(), existing.ID)

		assert.NoError(t, err)
		assert.Nil(t, order)
		orders.AssertExpectations(t)
	})

	t.Run("gateway error deletes the order and propagates", func(t *testing.T) {
		existing := newTestOrder(domain.StatusPending, domain.PaymentUnpaid, 0)
		existing.PaymentMethod = domain.MethodStripe

		gateway := new(mocks.MockGateway)
		gateway.On("VerifyPayment", mock.Anything, existing).Return(false, errors.New("gateway timeout"))

		service, orders, _ := newService(existing, gateway)
		orders.On("Delete", mock.Anything, existing.ID).Return(nil)

		_, err := service.VerifyGatewayPayment(context.Background(), existing.ID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gateway timeout")
		orders.AssertExpectations(t)
	})
}

func TestOrderService_SetStatus(t *testing.T) {
	tests := []struct {
		name          string
		current       domain.OrderStatus
		requested     domain.OrderStatus
		actor         domain.Actor
		expectedError error
		check         func(*testing.T, *domain.Order)
	}{
		{
			name:      "pending to shipped",
			current:   domain.StatusPending,
			requested: domain.StatusShipped,
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, domain.StatusShipped, o.Status)
				assert.Nil(t, o.DeliveredAt)
			},
		},
		{
			name:      "delivery stamps deliveredAt",
			current:   domain.StatusOutForDelivery,
			requested: domain.StatusDelivered,
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, domain.StatusDelivered, o.Status)
				if assert.NotNil(t, o.DeliveredAt) {
					assert.WithinDuration(t, time.Now(), *o.DeliveredAt, time.Second)
				}
			},
		},
		{
			name:      "cancellation stamps cancelledAt and defaults actor to admin",
			current:   domain.StatusOrderPlaced,
			requested: domain.StatusCancelled,
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, domain.StatusCancelled, o.Status)
				assert.NotNil(t, o.CancelledAt)
				assert.Equal(t, domain.ActorAdmin, o.CancelledBy)
			},
		},
		{
			name:          "delivered is terminal",
			current:       domain.StatusDelivered,
			requested:     domain.StatusCancelled,
			expectedError: ErrInvalidTransition,
		},
		{
			name:          "cancelled is terminal",
			current:       domain.StatusCancelled,
			requested:     domain.StatusShipped,
			expectedError: ErrInvalidTransition,
		},
		{
			name:          "pending is not a valid target",
			current:       domain.StatusShipped,
			requested:     domain.StatusPending,
			expectedError: ErrInvalidTransition,
		},
		{
			name:          "unknown status rejected",
			current:       domain.StatusPending,
			requested:     domain.OrderStatus("Teleported"),
			expectedError: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			publisher := new(mocks.MockPublisher)
			publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

			existing := newTestOrder(tt.current, domain.PaymentUnpaid, time.Hour)
			orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil).Maybe()
			orders.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Maybe()

			service := newTestService(orders, new(mocks.MockUserRepository), nil, publisher)
			order, err := service.SetStatus(context.Background(), existing.ID, tt.requested, tt.actor)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, order)
				orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			tt.check(t, order)
			time.Sleep(100 * time.Millisecond)
		})
	}

	t.Run("missing order", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		orders.On("FindByID", mock.Anything, mock.AnythingOfType("primitive.ObjectID")).Return(nil, nil)

		service := newTestService(orders, new(mocks.MockUserRepository), nil, new(mocks.MockPublisher))
		_, err := service.SetStatus(context.Background(), primitive.NewObjectID(), domain.StatusShipped, domain.ActorAdmin)

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("within window", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		publisher := new(mocks.MockPublisher)
		publisher.On("Publish", mock.Anything, domain.EventOrderCancelled, mock.Anything).Return(nil).Maybe()

		existing := newTestOrder(domain.StatusOrderPlaced, domain.PaymentUnpaid, 2*time.Hour)
		orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		orders.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

		service := newTestService(orders, new(mocks.MockUserRepository), nil, publisher)
		order, err := service.Cancel(context.Background(), existing.ID, existing.UserID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, order.Status)
		assert.Equal(t, domain.ActorUser, order.CancelledBy)
		assert.NotNil(t, order.CancelledAt)

		time.Sleep(100 * time.Millisecond)
		orders.AssertExpectations(t)
	})

	t.Run("window elapsed leaves order unchanged", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)

		existing := newTestOrder(domain.StatusOrderPlaced, domain.PaymentUnpaid, 25*time.Hour)
		orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		service := newTestService(orders, new(mocks.MockUserRepository), nil, new(mocks.MockPublisher))
		_, err := service.Cancel(context.Background(), existing.ID, existing.UserID)

		assert.ErrorIs(t, err, ErrCancelWindowClosed)
		assert.EqualError(t, err, "Order cancellation window (24 hours) has passed")
		assert.Equal(t, domain.StatusOrderPlaced, existing.Status)
		orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("terminal order names the current state", func(t *testing.T) {
		messages := map[domain.OrderStatus]string{
			domain.StatusDelivered: "Order cannot be cancelled as it is already delivered",
			domain.StatusCancelled: "Order cannot be cancelled as it is already cancelled",
		}
		for status, message := range messages {
			orders := new(mocks.MockOrderRepository)

			existing := newTestOrder(status, domain.PaymentUnpaid, time.Hour)
			orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

			service := newTestService(orders, new(mocks.MockUserRepository), nil, new(mocks.MockPublisher))
			_, err := service.Cancel(context.Background(), existing.ID, existing.UserID)

			var terminal *TerminalStateError
			if assert.ErrorAs(t, err, &terminal) {
				assert.Equal(t, status, terminal.Status)
			}
			assert.EqualError(t, err, message)
			orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		}
	})

	t.Run("someone else's order reads as not found", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)

		existing := newTestOrder(domain.StatusPending, domain.PaymentUnpaid, time.Hour)
		orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		service := newTestService(orders, new(mocks.MockUserRepository), nil, new(mocks.MockPublisher))
		_, err := service.Cancel(context.Background(), existing.ID, primitive.NewObjectID())

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestOrderService_UpdatePayment(t *testing.T) {
	tests := []struct {
		name          string
		status        domain.OrderStatus
		state         domain.PaymentState
		action        domain.PaymentAction
		expectedState domain.PaymentState
		expectedError error
	}{
		{
			name:          "mark as paid",
			status:        domain.StatusShipped,
			state:         domain.PaymentUnpaid,
			action:        domain.ActionMarkAsPaid,
			expectedState: domain.PaymentPaid,
		},
		{
			name:          "mark as unpaid",
			status:        domain.StatusShipped,
			state:         domain.PaymentPaid,
			action:        domain.ActionMarkAsUnpaid,
			expectedState: domain.PaymentUnpaid,
		},
		{
			name:          "mark as paid again is accepted",
			status:        domain.StatusOrderPlaced,
			state:         domain.PaymentPaid,
			action:        domain.ActionMarkAsPaid,
			expectedState: domain.PaymentPaid,
		},
		{
			name:          "refund requires cancelled order",
			status:        domain.StatusDelivered,
			state:         domain.PaymentPaid,
			action:        domain.ActionRefund,
			expectedError: ErrInvalidPaymentAction,
		},
		{
			name:          "refund on cancelled order",
			status:        domain.StatusCancelled,
			state:         domain.PaymentPaid,
			action:        domain.ActionRefund,
			expectedState: domain.PaymentRefunded,
		},
		{
			name:          "mark as paid on cancelled order rejected",
			status:        domain.StatusCancelled,
			state:         domain.PaymentRefunded,
			action:        domain.ActionMarkAsPaid,
			expectedError: ErrInvalidPaymentAction,
		},
		{
			name:          "unknown action rejected",
			status:        domain.StatusPending,
			state:         domain.PaymentUnpaid,
			action:        domain.PaymentAction("chargeback"),
			expectedError: ErrInvalidPaymentAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)

			existing := newTestOrder(tt.status, tt.state, time.Hour)
			orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
			orders.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Maybe()

			service := newTestService(orders, new(mocks.MockUserRepository), nil, new(mocks.MockPublisher))
			order, err := service.UpdatePayment(context.Background(), existing.ID, tt.action)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedState, order.PaymentState)
			if tt.expectedState == domain.PaymentRefunded {
				assert.Equal(t, domain.StatusCancelled, order.Status)
				assert.False(t, order.Paid())
				assert.True(t, order.Refunded())
			}
		})
	}
}

// Refund after an admin cancellation, then a late markAsPaid: the refund
// sticks and the stale action is rejected.
func TestOrderService_CancelThenRefundFlow(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	existing := newTestOrder(domain.StatusShipped, domain.PaymentPaid, time.Hour)
	orders.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	orders.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	service := newTestService(orders, new(mocks.MockUserRepository), nil, publisher)

	order, err := service.SetStatus(context.Background(), existing.ID, domain.StatusCancelled, domain.ActorAdmin)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, order.Status)

	order, err = service.UpdatePayment(context.Background(), existing.ID, domain.ActionRefund)
	assert.NoError(t, err)
	assert.False(t, order.Paid())
	assert.True(t, order.Refunded())

	_, err = service.UpdatePayment(context.Background(), existing.ID, domain.ActionMarkAsPaid)
	assert.ErrorIs(t, err, ErrInvalidPaymentAction)

	_, err = service.SetStatus(context.Background(), existing.ID, domain.StatusShipped, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	time.Sleep(100 * time.Millisecond)
}

func TestOrderService_Lists(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	userID := primitive.NewObjectID()

	orders.On("FindAll", mock.Anything).Return([]domain.Order{*newTestOrder(domain.StatusPending, domain.PaymentUnpaid, 0)}, nil)
	orders.On("FindByUserID", mock.Anything, userID).Return(nil, nil)

	service := newTestService(orders, new(mocks.MockUserRepository), nil, new(mocks.MockPublisher))

	all, err := service.AllOrders(context.Background())
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := service.UserOrders(context.Background(), userID)
	assert.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)
}
