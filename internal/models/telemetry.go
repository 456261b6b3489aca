package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventType string

const (
	EventTypeTilt EventType = "tilt"
	EventTypeLock EventType = "lock"
)

// Ping is one telemetry sample from a device.
type Ping struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID string             `json:"vehicle_id" bson:"vehicle_id"`
	Battery   float64            `json:"battery" bson:"battery"`
	Speed     float64            `json:"speed" bson:"speed"`
	Tilt      float64            `json:"tilt" bson:"tilt"`
	Locked    bool               `json:"locked" bson:"locked"`
	Location  *GeoPoint          `json:"location" bson:"location"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
}

// Event is a discrete device event: a tilt (fall) with the measured angle,
// or a lock state change.
type Event struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID string             `json:"vehicle_id" bson:"vehicle_id"`
	Type      EventType          `json:"type" bson:"type"`
	Value     float64            `json:"value,omitempty" bson:"value,omitempty"`
	On        bool               `json:"on,omitempty" bson:"on,omitempty"`
	Message   string             `json:"message" bson:"message"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
}

// BatterySample is one point of the dashboard battery trend chart.
type BatterySample struct {
	Timestamp time.Time `json:"timestamp"`
	Battery   float64   `json:"battery"`
}
