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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type vehicleRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewVehicleRepository(db *mongo.Database, cache CacheService) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("devices"),
		cache:      cache,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	// Try cache first
	if vehicle := r.getVehicleFromCache(ctx, id); vehicle != nil {
		return vehicle, nil
	}

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("device %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	r.cacheVehicle(ctx, &vehicle)

	return &vehicle, nil
}

func (r *vehicleRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode devices: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update device: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("device %s: %w", id, interfaces.ErrNotFound)
	}

	r.invalidateVehicleCache(ctx, id)

	return nil
}

func (r *vehicleRepository) Rename(ctx context.Context, id string, friendlyName string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"friendly_name": friendlyName,
	})
}

func (r *vehicleRepository) SaveGeofenceSlot(ctx context.Context, id string, slot int, fence *models.Geofence) error {
	prefix := fmt.Sprintf("geo%d", slot)

	return r.Update(ctx, id, map[string]interface{}{
		prefix:             fence.Center,
		prefix + "_name":   fence.Name,
		prefix + "_radius": fence.Radius,
		prefix + "_active": fence.Active,
	})
}

func (r *vehicleRepository) ClearGeofenceSlot(ctx context.Context, id string, slot int) error {
	prefix := fmt.Sprintf("geo%d", slot)

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$unset": bson.M{
				prefix:             "",
				prefix + "_name":   "",
				prefix + "_radius": "",
				prefix + "_active": "",
			},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to clear geofence slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("device %s: %w", id, interfaces.ErrNotFound)
	}

	r.invalidateVehicleCache(ctx, id)

	return nil
}

func (r *vehicleRepository) SetGeofenceActive(ctx context.Context, id string, slot int, active bool) error {
	prefix := fmt.Sprintf("geo%d", slot)

	return r.Update(ctx, id, map[string]interface{}{
		prefix + "_active": active,
	})
}

// Cache helpers. Device snapshots expire fast so dashboard reads mostly see
// live change-stream state, not cached responses.
func (r *vehicleRepository) cacheVehicle(ctx context.Context, vehicle *models.Vehicle) {
	if r.cache == nil {
		return
	}
	key := fmt.Sprintf("device:%s", vehicle.ID)
	r.cache.Set(ctx, key, vehicle, 30*time.Second)
}

func (r *vehicleRepository) getVehicleFromCache(ctx context.Context, id string) *models.Vehicle {
	if r.cache == nil {
		return nil
	}

	var vehicle models.Vehicle
	if err := r.cache.Get(ctx, fmt.Sprintf("device:%s", id), &vehicle); err != nil {
		return nil
	}
	return &vehicle
}

func (r *vehicleRepository) invalidateVehicleCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, fmt.Sprintf("device:%s", id))
}
