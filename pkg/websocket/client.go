package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	writeWait       = 10 * time.Second
	defaultPongWait = 60 * time.Second
	maxMessageSize  = 512
)

// Session receives watch requests from a connected client. One session per
// connection; Close is called on disconnect.
type Session interface {
	Watch(vehicleID string) error
	Close()
}

// SessionFactory builds a session bound to the client's push channel.
type SessionFactory interface {
	NewSession(userID primitive.ObjectID, push func(Message)) Session
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	UserID   primitive.ObjectID
	session  Session
	rooms    map[string]bool
	pongWait time.Duration
}

func NewClient(hub *Hub, conn *websocket.Conn, userID primitive.ObjectID, pongWait time.Duration) *Client {
	if pongWait <= 0 {
		pongWait = defaultPongWait
	}
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		UserID:   userID,
		rooms:    make(map[string]bool),
		pongWait: pongWait,
	}
}

// Push serializes a message onto the client's send queue.
func (c *Client) Push(message Message) {
	data, _ := json.Marshal(message)
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		// Handle incoming messages
		c.handleMessage(message)
	}
}

func (c *Client) writePump() {
	// Ping early enough that the pong lands before the read deadline.
	ticker := time.NewTicker(c.pongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages if any
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling client message: %v", err)
		return
	}

	msg.UserID = c.UserID
	msg.Timestamp = getCurrentTimestamp()

	switch msg.Type {
	case "watch_vehicle":
		vehicleID, ok := msg.Data["vehicle_id"].(string)
		if !ok || vehicleID == "" {
			c.Push(Message{
				Type:      "error",
				UserID:    c.UserID,
				Timestamp: getCurrentTimestamp(),
				Data:      map[string]interface{}{"message": "vehicle_id required"},
			})
			return
		}

		c.hub.JoinVehicle(c, vehicleID)

		if c.session != nil {
			if err := c.session.Watch(vehicleID); err != nil {
				log.Printf("Watch failed for vehicle %s: %v", vehicleID, err)
				c.Push(Message{
					Type:      "error",
					UserID:    c.UserID,
					Timestamp: getCurrentTimestamp(),
					Data:      map[string]interface{}{"message": "subscription failed"},
				})
			}
		}

	case "leave_room":
		if roomID, ok := msg.Data["room_id"].(string); ok {
			c.hub.LeaveRoom(c, roomID)
		}

	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}
