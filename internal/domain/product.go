package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       int64              `json:"price" bson:"price"`
	OldPrice    int64              `json:"oldPrice,omitempty" bson:"oldPrice,omitempty"`
	Images      []string           `json:"image" bson:"image"`
	Category    []string           `json:"category" bson:"category"`
	SubCategory []string           `json:"subCategory" bson:"subCategory"`
	Sizes       []string           `json:"sizes" bson:"sizes"`
	Bestseller  bool               `json:"bestseller" bson:"bestseller"`
	OutOfStock  bool               `json:"outOfStock" bson:"outOfStock"`
	OrderCount  int64              `json:"orderCount" bson:"orderCount"`
	CreatedAt   time.Time          `json:"date" bson:"createdAt"`
}
