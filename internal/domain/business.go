package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessData is the latest back-office summary snapshot.
type BusinessData struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TotalSales        int64              `json:"totalSales" bson:"totalSales"`
	AvgOrderValue     float64            `json:"avgOrderValue" bson:"avgOrderValue"`
	TotalOrdersCount  int64              `json:"totalOrdersCount" bson:"totalOrdersCount"`
	PaymentMethodPcts map[string]float64 `json:"paymentMethodPercentages" bson:"paymentMethodPercentages"`
	Timestamp         time.Time          `json:"timestamp" bson:"timestamp"`
}
