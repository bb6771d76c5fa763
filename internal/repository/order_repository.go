package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopfront/internal/domain"
)

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	// Update writes the mutable lifecycle fields (status, paymentState,
	// deliveredAt, cancelledAt, cancelledBy) in a single document update.
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdateCart(ctx context.Context, userID primitive.ObjectID, cart domain.CartData) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetBestseller(ctx context.Context, id primitive.ObjectID, bestseller bool) (*domain.Product, error)
	SetOutOfStock(ctx context.Context, id primitive.ObjectID, outOfStock bool) (*domain.Product, error)
}

type BusinessRepository interface {
	Latest(ctx context.Context) (*domain.BusinessData, error)
	Upsert(ctx context.Context, data *domain.BusinessData) error
}
