package routes

import (
	"github.com/gin-gonic/gin"

	handlers "ridersafe/internal/handlers/shared"
	"ridersafe/internal/middleware"
	"ridersafe/pkg/websocket"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Vehicle   *handlers.VehicleHandler
	Geofence  *handlers.GeofenceHandler
	License   *handlers.LicenseHandler
	Review    *handlers.ReviewHandler
	Analytics *handlers.AnalyticsHandler
	Contact   *handlers.ContactHandler
	Payment   *handlers.PaymentHandler
	WebSocket *websocket.Handler
}

func Setup(r *gin.Engine, h *Handlers, jwtSecret string) {
	api := r.Group("/api/v1")

	SetupAuthRoutes(api, h.Auth, jwtSecret)
	SetupVehicleRoutes(api, h, jwtSecret)
	SetupStoreRoutes(api, h, jwtSecret)

	// Live telemetry stream. Auth via query token since websocket clients
	// cannot set headers.
	r.GET("/ws", middleware.WebSocketAuth(jwtSecret), h.WebSocket.HandleWebSocket)
}
