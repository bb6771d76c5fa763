package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

type userRepo struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepo{coll: db.Collection("users")}
}

func (r *userRepo) Save(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CartData == nil {
		user.CartData = domain.CartData{}
	}
	_, err := r.coll.InsertOne(ctx, user)
	return err
}

func (r *userRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var u domain.User
	err := r.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	_, err := r.coll.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"address":    user.Address,
	}})
	return err
}

func (r *userRepo) UpdateCart(ctx context.Context, userID primitive.ObjectID, cart domain.CartData) error {
	_, err := r.coll.UpdateByID(ctx, userID, bson.M{"$set": bson.M{"cartData": cart}})
	return err
}

func (r *userRepo) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	return r.UpdateCart(ctx, userID, domain.CartData{})
}
