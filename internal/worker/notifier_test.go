package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/domain"
	"shopfront/internal/mocks"
)

type stubSource struct {
	deliveries []struct {
		key  string
		body []byte
	}
}

func (s *stubSource) add(key string, event domain.OrderEvent) {
	body, _ := json.Marshal(event)
	s.deliveries = append(s.deliveries, struct {
		key  string
		body []byte
	}{key, body})
}

func (s *stubSource) Consume(_ context.Context, handle func(routingKey string, body []byte) error) error {
	for _, d := range s.deliveries {
		if err := handle(d.key, d.body); err != nil {
			return err
		}
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifier_SendsPlacementEmail(t *testing.T) {
	userID := primitive.NewObjectID()
	orderID := primitive.NewObjectID()

	source := &stubSource{}
	source.add(domain.EventOrderPlaced, domain.OrderEvent{
		OrderID:       orderID,
		UserID:        userID,
		Status:        domain.StatusPending,
		PaymentMethod: domain.MethodCOD,
		Amount:        260,
	})

	users := new(mocks.MockUserRepository)
	users.On("FindByID", mock.Anything, userID).Return(&domain.User{ID: userID, Email: "jo@example.com"}, nil)

	mail := new(mocks.MockMailer)
	mail.On("Send", mock.Anything, "jo@example.com", "Your order has been placed", mock.Anything, mock.Anything).Return(nil)

	notifier := NewNotifier(testLogger(), source, users, mail)
	err := notifier.Run(context.Background())

	assert.NoError(t, err)
	mail.AssertExpectations(t)
}

func TestNotifier_SkipsUnknownUserAndBadPayload(t *testing.T) {
	source := &stubSource{}
	source.add(domain.EventOrderCancelled, domain.OrderEvent{
		OrderID: primitive.NewObjectID(),
		UserID:  primitive.NewObjectID(),
	})
	source.deliveries = append(source.deliveries, struct {
		key  string
		body []byte
	}{domain.EventOrderPlaced, []byte("not json")})

	users := new(mocks.MockUserRepository)
	users.On("FindByID", mock.Anything, mock.AnythingOfType("primitive.ObjectID")).Return(nil, nil)

	mail := new(mocks.MockMailer)

	notifier := NewNotifier(testLogger(), source, users, mail)
	err := notifier.Run(context.Background())

	assert.NoError(t, err)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComposeMessage(t *testing.T) {
	event := domain.OrderEvent{OrderID: primitive.NewObjectID(), Status: domain.StatusShipped}

	subject, text := composeMessage(domain.EventOrderStatusChanged, event)
	assert.Equal(t, "Your order status has changed", subject)
	assert.Contains(t, text, string(domain.StatusShipped))

	subject, _ = composeMessage("order.unknown", event)
	assert.Empty(t, subject)
}
