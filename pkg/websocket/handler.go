package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Options tunes the connection handling. Zero values fall back to defaults.
type Options struct {
	ReadBufferSize    int
	WriteBufferSize   int
	HandshakeTimeout  time.Duration
	PongTimeout       time.Duration
	MaxConnections    int
	EnableCompression bool
	AllowedOrigins    []string
}

type Handler struct {
	hub      *Hub
	sessions SessionFactory
	upgrader websocket.Upgrader
	opts     Options
}

func NewHandler(sessions SessionFactory, opts *Options) *Handler {
	if opts == nil {
		opts = &Options{}
	}

	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub:      hub,
		sessions: sessions,
		opts:     *opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    opts.ReadBufferSize,
			WriteBufferSize:   opts.WriteBufferSize,
			HandshakeTimeout:  opts.HandshakeTimeout,
			EnableCompression: opts.EnableCompression,
			CheckOrigin:       originChecker(opts.AllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	allowAll := len(allowed) == 0
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
		}
		set[origin] = true
	}

	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		return set[r.Header.Get("Origin")]
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if h.opts.MaxConnections > 0 && h.hub.ClientCount() >= h.opts.MaxConnections {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Too many connections"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userObjectID, h.opts.PongTimeout)
	if h.sessions != nil {
		client.session = h.sessions.NewSession(userObjectID, client.Push)
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Handler) SendVehicleUpdate(vehicleID string, updateType string, data map[string]interface{}) {
	message := Message{
		Type:      updateType,
		RoomID:    "vehicle_" + vehicleID,
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.hub.SendVehicleUpdate(vehicleID, message)
}

func (h *Handler) SendUserNotification(userID primitive.ObjectID, notificationType string, data map[string]interface{}) {
	message := Message{
		Type:      notificationType,
		UserID:    userID,
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.hub.SendToUser(userID, message)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
