package mongodb

import (
	"context"
	"fmt"
	"time"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type licenseRepository struct {
	collection *mongo.Collection
}

func NewLicenseRepository(db *mongo.Database) interfaces.LicenseRepository {
	return &licenseRepository{
		collection: db.Collection("licenses"),
	}
}

func (r *licenseRepository) Create(ctx context.Context, license *models.License) error {
	license.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, license)
	if err != nil {
		return fmt.Errorf("failed to create license: %w", err)
	}

	return nil
}

func (r *licenseRepository) GetByCode(ctx context.Context, code string) (*models.License, error) {
	var license models.License
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&license)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("license: %w", interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get license: %w", err)
	}

	return &license, nil
}

func (r *licenseRepository) Exists(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": code})
	if err != nil {
		return false, fmt.Errorf("failed to check license existence: %w", err)
	}
	return count > 0, nil
}

func (r *licenseRepository) GetByPurchaseID(ctx context.Context, purchaseID string) (*models.License, error) {
	var license models.License
	err := r.collection.FindOne(ctx, bson.M{"purchase_id": purchaseID}).Decode(&license)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("license for purchase %s: %w", purchaseID, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get license by purchase: %w", err)
	}

	return &license, nil
}

func (r *licenseRepository) MarkActivated(ctx context.Context, code string, userID primitive.ObjectID, vehicleID, plan string, at time.Time) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": code, "active": false},
		bson.M{"$set": bson.M{
			"active":       true,
			"user_id":      userID,
			"vehicle_id":   vehicleID,
			"plan":         plan,
			"activated_at": at,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark license activated: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("license not activatable: %w", interfaces.ErrNotFound)
	}

	return nil
}
