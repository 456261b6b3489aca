package interfaces

import (
	"context"

	"ridersafe/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Vehicle, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Rename(ctx context.Context, id string, friendlyName string) error

	// Geofence slot configuration. Slot is 1..3.
	SaveGeofenceSlot(ctx context.Context, id string, slot int, fence *models.Geofence) error
	ClearGeofenceSlot(ctx context.Context, id string, slot int) error
	SetGeofenceActive(ctx context.Context, id string, slot int, active bool) error
}
