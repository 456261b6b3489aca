package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func drain(t *testing.T, c *Client) []Message {
	t.Helper()
	var out []Message
	for {
		select {
		case raw, ok := <-c.send:
			if !ok {
				return out
			}
			var msg Message
			require.NoError(t, json.Unmarshal(raw, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestJoinVehicleSwitchesRooms(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, primitive.NewObjectID(), 0)
	hub.registerClient(client)
	drain(t, client) // welcome

	hub.JoinVehicle(client, "MOTO-A")
	hub.SendVehicleUpdate("MOTO-A", Message{Type: "alert"})
	messages := drain(t, client)
	require.Len(t, messages, 1)
	assert.Equal(t, "alert", messages[0].Type)

	hub.JoinVehicle(client, "MOTO-B")

	// The old vehicle's updates must stop after the switch.
	hub.SendVehicleUpdate("MOTO-A", Message{Type: "alert"})
	assert.Empty(t, drain(t, client))

	hub.SendVehicleUpdate("MOTO-B", Message{Type: "vehicle_state"})
	messages = drain(t, client)
	require.Len(t, messages, 1)
	assert.Equal(t, "vehicle_state", messages[0].Type)
}

func TestLeaveRoomDropsMembership(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, primitive.NewObjectID(), 0)
	hub.registerClient(client)
	drain(t, client)

	hub.JoinVehicle(client, "MOTO-01")
	hub.LeaveRoom(client, "vehicle_MOTO-01")

	hub.SendVehicleUpdate("MOTO-01", Message{Type: "alert"})
	assert.Empty(t, drain(t, client))
}

func TestSlowClientEvictedOnce(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, primitive.NewObjectID(), 0)
	hub.registerClient(client)
	drain(t, client)
	hub.JoinVehicle(client, "MOTO-01")

	// Saturate the send queue so the next room delivery cannot land.
	for i := 0; i < cap(client.send); i++ {
		client.send <- []byte("{}")
	}
	hub.SendVehicleUpdate("MOTO-01", Message{Type: "alert"})

	assert.Equal(t, 0, hub.ClientCount())

	// A late unregister from the read pump must not double close.
	assert.NotPanics(t, func() { hub.unregisterClient(client) })
}
