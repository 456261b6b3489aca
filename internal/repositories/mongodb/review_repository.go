package mongodb

import (
	"context"
	"fmt"
	"math"
	"time"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) interfaces.ReviewRepository {
	return &reviewRepository{
		collection: db.Collection("reviews"),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("review %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) GetByUserAndProduct(ctx context.Context, userID primitive.ObjectID, productID string) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":    userID,
		"product_id": productID,
	}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("review by user %s for product %s: %w", userID.Hex(), productID, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("review %s: %w", id.Hex(), interfaces.ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review %s: %w", id.Hex(), interfaces.ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string, rating int, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	filter := bson.M{"product_id": productID}
	if rating > 0 {
		filter["rating"] = rating
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *reviewRepository) Summary(ctx context.Context, productID string) (*models.ReviewSummary, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"product_id": productID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Rating int   `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode review summary: %w", err)
	}

	summary := &models.ReviewSummary{
		ProductID: productID,
		Stars:     make(map[int]int64, 5),
	}
	for star := 1; star <= 5; star++ {
		summary.Stars[star] = 0
	}

	var weighted int64
	for _, bucket := range buckets {
		summary.Count += bucket.Count
		summary.Stars[bucket.Rating] = bucket.Count
		weighted += int64(bucket.Rating) * bucket.Count
	}

	if summary.Count > 0 {
		average := float64(weighted) / float64(summary.Count)
		summary.Average = math.Round(average*10) / 10
	}

	return summary, nil
}
