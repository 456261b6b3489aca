package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName          string             `json:"full_name" bson:"full_name" validate:"required,min=2,max=100"`
	Email             string             `json:"email" bson:"email" validate:"required,email"`
	Password          string             `json:"-" bson:"password"`
	Status            UserStatus         `json:"status" bson:"status" default:"active"`
	IsEmailVerified   bool               `json:"is_email_verified" bson:"is_email_verified" default:"false"`
	FCMToken          string             `json:"-" bson:"fcm_token"`
	Vehicles          []string           `json:"vehicles" bson:"vehicles"`
	ActivationCodes   []string           `json:"activation_codes" bson:"activation_codes"`
	PurchasedProducts []string           `json:"purchased_products" bson:"purchased_products"`
	LastLoginAt       *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasProduct reports whether the user purchased the given product id.
func (u *User) HasProduct(productID string) bool {
	for _, p := range u.PurchasedProducts {
		if p == productID {
			return true
		}
	}
	return false
}

// OwnsVehicle reports whether the vehicle id is in the user's profile list.
func (u *User) OwnsVehicle(vehicleID string) bool {
	for _, v := range u.Vehicles {
		if v == vehicleID {
			return true
		}
	}
	return false
}
