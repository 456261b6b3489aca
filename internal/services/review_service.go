package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
	"ridersafe/pkg/logger"
)

var (
	ErrAlreadyReviewed = errors.New("user has already reviewed this product")
	ErrNotReviewOwner  = errors.New("review belongs to a different user")
)

type ReviewService interface {
	CreateReview(ctx context.Context, request *CreateReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, userID primitive.ObjectID, reviewID primitive.ObjectID, request *UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, userID primitive.ObjectID, reviewID primitive.ObjectID) error
	ListReviews(ctx context.Context, productID string, rating int, params *utils.PaginationParams) ([]*models.Review, int64, error)
	GetSummary(ctx context.Context, productID string) (*models.ReviewSummary, error)
}

type CreateReviewRequest struct {
	UserID    primitive.ObjectID `json:"-"`
	ProductID string             `json:"product_id" validate:"required"`
	Rating    int                `json:"rating" validate:"required,rating"`
	Title     string             `json:"title" validate:"max=120"`
	Body      string             `json:"body" validate:"required,max=2000"`
}

type UpdateReviewRequest struct {
	Rating int    `json:"rating" validate:"omitempty,rating"`
	Title  string `json:"title" validate:"max=120"`
	Body   string `json:"body" validate:"max=2000"`
}

type reviewService struct {
	reviewRepo interfaces.ReviewRepository
	userRepo   interfaces.UserRepository
	logger     *logger.Logger
}

func NewReviewService(reviewRepo interfaces.ReviewRepository, userRepo interfaces.UserRepository, log *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		logger:     log,
	}
}

// CreateReview enforces one review per user per product with a lookup
// before the insert. The unique index on (product_id, user_id) backstops
// the race between two concurrent submissions.
func (s *reviewService) CreateReview(ctx context.Context, request *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.reviewRepo.GetByUserAndProduct(ctx, request.UserID, request.ProductID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, request.UserID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID:        request.ProductID,
		UserID:           user.ID,
		UserEmail:        user.Email,
		DisplayName:      displayName(user),
		Rating:           request.Rating,
		Title:            strings.TrimSpace(request.Title),
		Body:             strings.TrimSpace(request.Body),
		VerifiedPurchase: user.HasProduct(request.ProductID),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	s.logger.LogUserAction(user.ID, "review_created", map[string]interface{}{
		"product_id": request.ProductID,
		"rating":     request.Rating,
	})

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID primitive.ObjectID, reviewID primitive.ObjectID, request *UpdateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	updates := map[string]interface{}{}
	if request.Rating != 0 {
		updates["rating"] = request.Rating
	}
	if request.Title != "" {
		updates["title"] = strings.TrimSpace(request.Title)
	}
	if request.Body != "" {
		updates["body"] = strings.TrimSpace(request.Body)
	}
	if len(updates) == 0 {
		return review, nil
	}

	if err := s.reviewRepo.Update(ctx, reviewID, updates); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, reviewID)
}

func (s *reviewService) DeleteReview(ctx context.Context, userID primitive.ObjectID, reviewID primitive.ObjectID) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *reviewService) ListReviews(ctx context.Context, productID string, rating int, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	return s.reviewRepo.ListByProduct(ctx, productID, rating, params)
}

func (s *reviewService) GetSummary(ctx context.Context, productID string) (*models.ReviewSummary, error) {
	return s.reviewRepo.Summary(ctx, productID)
}

// displayName shows the first name plus last initial, falling back to the
// masked email when the profile has no name.
func displayName(user *models.User) string {
	parts := strings.Fields(strings.TrimSpace(user.FullName))
	switch len(parts) {
	case 0:
		return utils.MaskEmail(user.Email)
	case 1:
		return parts[0]
	default:
		return parts[0] + " " + string([]rune(parts[len(parts)-1])[0:1]) + "."
	}
}
