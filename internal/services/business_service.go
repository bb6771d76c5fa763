package services

import (
	"context"
	"log/slog"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

type BusinessService struct {
	log    *slog.Logger
	data   repository.BusinessRepository
	orders repository.OrderRepository
}

func NewBusinessService(log *slog.Logger, data repository.BusinessRepository, orders repository.OrderRepository) *BusinessService {
	return &BusinessService{log: log, data: data, orders: orders}
}

// UpdateSummary stores a new back-office snapshot, refreshing the order
// count from the store.
func (s *BusinessService) UpdateSummary(ctx context.Context, summary *domain.BusinessData) (*domain.BusinessData, error) {
	count, err := s.orders.Count(ctx)
	if err != nil {
		s.log.Warn("failed to count orders for business summary", "error", err)
	} else {
		summary.TotalOrdersCount = count
	}
	summary.Timestamp = time.Now()

	if err := s.data.Upsert(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *BusinessService) LatestSummary(ctx context.Context) (*domain.BusinessData, error) {
	return s.data.Latest(ctx)
}

func (s *BusinessService) TotalOrders(ctx context.Context) (int64, error) {
	return s.orders.Count(ctx)
}
