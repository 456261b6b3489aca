package interfaces

import (
	"context"

	"ridersafe/internal/models"
	"ridersafe/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	GetByUserAndProduct(ctx context.Context, userID primitive.ObjectID, productID string) (*models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListByProduct filters by rating when rating > 0.
	ListByProduct(ctx context.Context, productID string, rating int, params *utils.PaginationParams) ([]*models.Review, int64, error)
	Summary(ctx context.Context, productID string) (*models.ReviewSummary, error)
}
