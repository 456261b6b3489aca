package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID        string             `json:"product_id" bson:"product_id" validate:"required"`
	UserID           primitive.ObjectID `json:"user_id" bson:"user_id"`
	UserEmail        string             `json:"user_email" bson:"user_email"`
	DisplayName      string             `json:"display_name" bson:"display_name"`
	Rating           int                `json:"rating" bson:"rating" validate:"required,rating"`
	Title            string             `json:"title" bson:"title" validate:"max=120"`
	Body             string             `json:"body" bson:"body" validate:"required,max=2000"`
	VerifiedPurchase bool               `json:"verified_purchase" bson:"verified_purchase"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// ReviewSummary aggregates a product's reviews for the product page.
type ReviewSummary struct {
	ProductID string        `json:"product_id"`
	Count     int64         `json:"count"`
	Average   float64       `json:"average"`
	Stars     map[int]int64 `json:"stars"`
}
