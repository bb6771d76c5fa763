package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartData maps product id -> size -> quantity, mirroring how the
// storefront client keeps the active cart.
type CartData map[string]map[string]int64

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName string             `json:"first_name" bson:"first_name"`
	LastName  string             `json:"last_name" bson:"last_name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Address   Address            `json:"address" bson:"address"`
	CartData  CartData           `json:"cartData" bson:"cartData"`
	CreatedAt primitive.DateTime `json:"-" bson:"createdAt,omitempty"`
}
