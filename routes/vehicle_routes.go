package routes

import (
	"github.com/gin-gonic/gin"

	"ridersafe/internal/middleware"
)

// SetupVehicleRoutes sets up vehicle, geofence and analytics routes
func SetupVehicleRoutes(r *gin.RouterGroup, h *Handlers, jwtSecret string) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired(jwtSecret))
	{
		vehicles.GET("", h.Vehicle.ListVehicles)
		vehicles.GET("/:id", h.Vehicle.GetState)
		vehicles.PUT("/:id/name", h.Vehicle.Rename)
		vehicles.GET("/:id/history", h.Vehicle.GetHistory)
		vehicles.GET("/:id/analytics", h.Analytics.GetReport)

		vehicles.GET("/:id/geofences", h.Geofence.ListGeofences)
		vehicles.POST("/:id/geofences", h.Geofence.SaveGeofence)
		vehicles.PUT("/:id/geofences/:slot", h.Geofence.ToggleGeofence)
		vehicles.DELETE("/:id/geofences/:slot", h.Geofence.RemoveGeofence)
	}

	licenses := r.Group("/licenses")
	licenses.Use(middleware.AuthRequired(jwtSecret))
	{
		licenses.POST("/activate", h.License.Activate)
	}
}
