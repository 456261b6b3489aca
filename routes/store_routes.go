package routes

import (
	"github.com/gin-gonic/gin"

	"ridersafe/internal/middleware"
)

// SetupStoreRoutes sets up the public site routes: reviews, contact form
// and the purchase flow
func SetupStoreRoutes(r *gin.RouterGroup, h *Handlers, jwtSecret string) {
	products := r.Group("/products")
	{
		products.GET("/:product_id/reviews", h.Review.ListReviews)
		products.GET("/:product_id/reviews/summary", h.Review.GetSummary)
	}

	authedProducts := r.Group("/products")
	authedProducts.Use(middleware.AuthRequired(jwtSecret))
	{
		authedProducts.POST("/:product_id/reviews", h.Review.CreateReview)
	}

	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthRequired(jwtSecret))
	{
		reviews.PUT("/:id", h.Review.UpdateReview)
		reviews.DELETE("/:id", h.Review.DeleteReview)
	}

	r.POST("/contact", h.Contact.Submit)
	r.POST("/checkout", h.License.CreateCheckout)

	// Payment provider callback, signature-verified, never behind auth.
	r.POST("/webhooks/stripe", h.Payment.HandleWebhook)
}
