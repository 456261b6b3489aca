package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is the device document. Geofence slots are flat fields: a slot is
// configured only when its point, name and radius are all present.
type Vehicle struct {
	ID           string             `json:"id" bson:"_id"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id"`
	LicenseCode  string             `json:"license_code" bson:"license_code"`
	FriendlyName string             `json:"friendly_name" bson:"friendly_name"`
	Plan         string             `json:"plan" bson:"plan"`
	Battery      float64            `json:"battery" bson:"battery"`
	Tilt         float64            `json:"tilt" bson:"tilt"`
	Speed        float64            `json:"speed" bson:"speed"`
	Locked       bool               `json:"locked" bson:"locked"`
	Location     *GeoPoint          `json:"location" bson:"location"`
	Timestamp    *time.Time         `json:"timestamp" bson:"timestamp"`

	Geo1       *GeoPoint `json:"geo1,omitempty" bson:"geo1,omitempty"`
	Geo1Name   string    `json:"geo1_name,omitempty" bson:"geo1_name,omitempty"`
	Geo1Radius *float64  `json:"geo1_radius,omitempty" bson:"geo1_radius,omitempty"`
	Geo1Active bool      `json:"geo1_active,omitempty" bson:"geo1_active,omitempty"`

	Geo2       *GeoPoint `json:"geo2,omitempty" bson:"geo2,omitempty"`
	Geo2Name   string    `json:"geo2_name,omitempty" bson:"geo2_name,omitempty"`
	Geo2Radius *float64  `json:"geo2_radius,omitempty" bson:"geo2_radius,omitempty"`
	Geo2Active bool      `json:"geo2_active,omitempty" bson:"geo2_active,omitempty"`

	Geo3       *GeoPoint `json:"geo3,omitempty" bson:"geo3,omitempty"`
	Geo3Name   string    `json:"geo3_name,omitempty" bson:"geo3_name,omitempty"`
	Geo3Radius *float64  `json:"geo3_radius,omitempty" bson:"geo3_radius,omitempty"`
	Geo3Active bool      `json:"geo3_active,omitempty" bson:"geo3_active,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ParseGeofences returns the configured slots in slot order. Slots missing
// the point, name or radius are skipped.
func (v *Vehicle) ParseGeofences() []Geofence {
	slots := []struct {
		slot   int
		point  *GeoPoint
		name   string
		radius *float64
		active bool
	}{
		{1, v.Geo1, v.Geo1Name, v.Geo1Radius, v.Geo1Active},
		{2, v.Geo2, v.Geo2Name, v.Geo2Radius, v.Geo2Active},
		{3, v.Geo3, v.Geo3Name, v.Geo3Radius, v.Geo3Active},
	}

	fences := make([]Geofence, 0, len(slots))
	for _, s := range slots {
		if s.point == nil || s.name == "" || s.radius == nil {
			continue
		}
		fences = append(fences, Geofence{
			Slot:   s.slot,
			Name:   s.name,
			Center: *s.point,
			Radius: *s.radius,
			Active: s.active,
		})
	}
	return fences
}

// FreeSlot returns the first unconfigured slot number, or 0 when all three
// are taken.
func (v *Vehicle) FreeSlot() int {
	used := make(map[int]bool, 3)
	for _, f := range v.ParseGeofences() {
		used[f.Slot] = true
	}
	for slot := 1; slot <= 3; slot++ {
		if !used[slot] {
			return slot
		}
	}
	return 0
}

// VehicleState is the dashboard view of a device document. Missing numeric
// fields read as zero.
type VehicleState struct {
	VehicleID    string     `json:"vehicle_id"`
	FriendlyName string     `json:"friendly_name"`
	Battery      float64    `json:"battery"`
	Tilt         float64    `json:"tilt"`
	Speed        float64    `json:"speed"`
	Locked       bool       `json:"locked"`
	Location     *GeoPoint  `json:"location"`
	Timestamp    *time.Time `json:"timestamp"`
	Connected    bool       `json:"connected"`
	Geofences    []Geofence `json:"geofences"`
}

// StateView maps the raw document to its dashboard representation.
func (v *Vehicle) StateView() *VehicleState {
	return &VehicleState{
		VehicleID:    v.ID,
		FriendlyName: v.FriendlyName,
		Battery:      v.Battery,
		Tilt:         v.Tilt,
		Speed:        v.Speed,
		Locked:       v.Locked,
		Location:     v.Location,
		Timestamp:    v.Timestamp,
		Geofences:    v.ParseGeofences(),
	}
}
