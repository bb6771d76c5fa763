package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

type businessRepo struct {
	coll *mongo.Collection
}

func NewBusinessRepository(db *mongo.Database) repository.BusinessRepository {
	return &businessRepo{coll: db.Collection("businessdata")}
}

func (r *businessRepo) Latest(ctx context.Context) (*domain.BusinessData, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	var d domain.BusinessData
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Upsert replaces the latest snapshot, or inserts the first one.
func (r *businessRepo) Upsert(ctx context.Context, data *domain.BusinessData) error {
	latest, err := r.Latest(ctx)
	if err != nil {
		return err
	}
	if latest == nil {
		data.ID = primitive.NewObjectID()
		_, err = r.coll.InsertOne(ctx, data)
		return err
	}
	data.ID = latest.ID
	_, err = r.coll.ReplaceOne(ctx, bson.M{"_id": latest.ID}, data)
	return err
}
