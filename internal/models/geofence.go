package models

import "time"

type GeofenceEventType string

const (
	GeofenceEventEnter GeofenceEventType = "enter"
	GeofenceEventExit  GeofenceEventType = "exit"
)

// GeoPoint is a WGS84 coordinate pair as stored on device documents.
type GeoPoint struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Geofence is one of a vehicle's three circular fence slots. IsInside is
// derived per evaluation and never persisted.
type Geofence struct {
	Slot     int      `json:"slot" bson:"-"`
	Name     string   `json:"name" bson:"-" validate:"required"`
	Center   GeoPoint `json:"center" bson:"-"`
	Radius   float64  `json:"radius" bson:"-" validate:"required,geofence_radius"`
	Active   bool     `json:"active" bson:"-"`
	IsInside bool     `json:"is_inside" bson:"-"`
}

// Equal compares configuration only; IsInside is ignored.
func (g Geofence) Equal(other Geofence) bool {
	return g.Slot == other.Slot &&
		g.Name == other.Name &&
		g.Center == other.Center &&
		g.Radius == other.Radius &&
		g.Active == other.Active
}

// GeofencesEqual reports whether two fence sets share the same configuration,
// slot by slot.
func GeofencesEqual(a, b []Geofence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

type GeofenceEvent struct {
	VehicleID string            `json:"vehicle_id"`
	Slot      int               `json:"slot"`
	FenceName string            `json:"fence_name"`
	Type      GeofenceEventType `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
}

// Message renders the user-facing alert text for the event.
func (e GeofenceEvent) Message() string {
	if e.Type == GeofenceEventEnter {
		return "entering " + e.FenceName
	}
	return "exiting " + e.FenceName
}
