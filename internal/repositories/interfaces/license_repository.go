package interfaces

import (
	"context"
	"time"

	"ridersafe/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LicenseRepository interface {
	Create(ctx context.Context, license *models.License) error
	GetByCode(ctx context.Context, code string) (*models.License, error)
	Exists(ctx context.Context, code string) (bool, error)
	GetByPurchaseID(ctx context.Context, purchaseID string) (*models.License, error)

	// MarkActivated flips the active flag and records the activation. Runs
	// inside the activation transaction when ctx carries a mongo session.
	MarkActivated(ctx context.Context, code string, userID primitive.ObjectID, vehicleID, plan string, at time.Time) error
}
