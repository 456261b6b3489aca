package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ridersafe/internal/services"
	"ridersafe/internal/utils"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request services.CreateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	request.UserID = userID
	request.ProductID = c.Param("product_id")

	review, err := h.reviewService.CreateReview(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, reviewStatus(err), "REVIEW_CREATE_FAILED", err.Error())
		return
	}

	utils.CreatedResponse(c, "Review created", review)
}

// ListReviews returns a page of reviews, newest first, optionally filtered
// by star rating.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID := c.Param("product_id")
	params := utils.GetPaginationParams(c)

	rating := 0
	if raw := c.Query("rating"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 5 {
			utils.BadRequestResponse(c, "Rating filter must be between 1 and 5")
			return
		}
		rating = parsed
	}

	reviews, total, err := h.reviewService.ListReviews(c.Request.Context(), productID, rating, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "REVIEW_LIST_FAILED", err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Reviews retrieved", reviews, &utils.Meta{
		Pagination: utils.NewPaginationMeta(params, total),
	})
}

func (h *ReviewHandler) GetSummary(c *gin.Context) {
	summary, err := h.reviewService.GetSummary(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "REVIEW_SUMMARY_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Summary retrieved", summary)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID")
		return
	}

	var request services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), userID, reviewID, &request)
	if err != nil {
		utils.ErrorResponse(c, reviewStatus(err), "REVIEW_UPDATE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Review updated", review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, reviewID); err != nil {
		utils.ErrorResponse(c, reviewStatus(err), "REVIEW_DELETE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Review deleted", nil)
}

func reviewStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrAlreadyReviewed):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotReviewOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
