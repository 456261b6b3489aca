package routes

import (
	"github.com/gin-gonic/gin"

	handlers "ridersafe/internal/handlers/shared"
	"ridersafe/internal/middleware"
)

// SetupAuthRoutes sets up account and session routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/verify-email", authHandler.VerifyEmail)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthRequired(jwtSecret))
	{
		me.GET("", authHandler.GetProfile)
		me.PUT("/fcm-token", authHandler.UpdateFCMToken)
	}
}
