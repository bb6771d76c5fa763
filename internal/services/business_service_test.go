package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shopfront/internal/domain"
	"shopfront/internal/mocks"
)

func TestBusinessService_UpdateSummary(t *testing.T) {
	t.Run("refreshes order count and timestamps the snapshot", func(t *testing.T) {
		data := new(mocks.MockBusinessRepository)
		orders := new(mocks.MockOrderRepository)
		orders.On("Count", mock.Anything).Return(int64(42), nil)
		data.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.BusinessData")).Return(nil)

		service := NewBusinessService(newTestLogger(), data, orders)
		summary, err := service.UpdateSummary(context.Background(), &domain.BusinessData{TotalOrdersCount: 1})

		assert.NoError(t, err)
		assert.Equal(t, int64(42), summary.TotalOrdersCount)
		assert.WithinDuration(t, time.Now(), summary.Timestamp, time.Second)
		data.AssertExpectations(t)
	})

	t.Run("count failure keeps the submitted figure", func(t *testing.T) {
		data := new(mocks.MockBusinessRepository)
		orders := new(mocks.MockOrderRepository)
		orders.On("Count", mock.Anything).Return(int64(0), errors.New("database error"))
		data.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.BusinessData")).Return(nil)

		service := NewBusinessService(newTestLogger(), data, orders)
		summary, err := service.UpdateSummary(context.Background(), &domain.BusinessData{TotalOrdersCount: 7})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), summary.TotalOrdersCount)
	})
}

func TestBusinessService_TotalOrders(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	orders.On("Count", mock.Anything).Return(int64(5), nil)

	service := NewBusinessService(newTestLogger(), new(mocks.MockBusinessRepository), orders)
	count, err := service.TotalOrders(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
