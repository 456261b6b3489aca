package interfaces

import (
	"context"

	"ridersafe/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Verification operations
	UpdateEmailVerification(ctx context.Context, id primitive.ObjectID, verified bool) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error
	UpdateFCMToken(ctx context.Context, id primitive.ObjectID, token string) error

	// Activation bookkeeping. Runs inside the activation transaction when ctx
	// carries a mongo session.
	AppendActivation(ctx context.Context, id primitive.ObjectID, vehicleID, code, product string) error
}
