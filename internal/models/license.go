package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// License uses the activation code itself as the document key. The active
// flag transitions false to true exactly once, inside the activation
// transaction.
type License struct {
	Code        string             `json:"code" bson:"_id"`
	Plan        string             `json:"plan" bson:"plan"`
	Active      bool               `json:"active" bson:"active"`
	UserID      primitive.ObjectID `json:"user_id,omitempty" bson:"user_id,omitempty"`
	VehicleID   string             `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty"`
	PurchaseID  string             `json:"purchase_id,omitempty" bson:"purchase_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	ActivatedAt *time.Time         `json:"activated_at,omitempty" bson:"activated_at,omitempty"`
}
