package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

const productListCacheKey = "products:all"

type ProductService struct {
	log         *slog.Logger
	repo        repository.ProductRepository
	redisClient *redis.Client
}

func NewProductService(log *slog.Logger, repo repository.ProductRepository) *ProductService {
	return &ProductService{log: log, repo: repo}
}

func (s *ProductService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// SaveProduct inserts a new product or replaces an existing one when id is set.
func (s *ProductService) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID.IsZero() {
		product.CreatedAt = time.Now()
		if err := s.repo.Save(ctx, product); err != nil {
			return nil, err
		}
		s.invalidateListCache(ctx)
		return product, nil
	}

	existing, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	// The admin form does not carry these fields; keep the stored values.
	product.OutOfStock = existing.OutOfStock
	product.OrderCount = existing.OrderCount
	product.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return product, nil
}

// ListProducts serves the catalog, read-through cached in redis.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, productListCacheKey).Result()
		if err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(products); err == nil {
			s.redisClient.Set(ctx, productListCacheKey, data, time.Minute)
		}
	}

	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) RemoveProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *ProductService) ToggleBestseller(ctx context.Context, id primitive.ObjectID, bestseller bool) (*domain.Product, error) {
	p, err := s.repo.SetBestseller(ctx, id, bestseller)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	s.invalidateListCache(ctx)
	return p, nil
}

func (s *ProductService) ToggleOutOfStock(ctx context.Context, id primitive.ObjectID, outOfStock bool) (*domain.Product, error) {
	p, err := s.repo.SetOutOfStock(ctx, id, outOfStock)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	s.invalidateListCache(ctx)
	return p, nil
}

func (s *ProductService) invalidateListCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, productListCacheKey).Err(); err != nil {
		s.log.Warn("failed to invalidate product cache", "error", err)
	}
}
