package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeofenceEqual(t *testing.T) {
	base := Geofence{
		Slot:   1,
		Name:   "Casa",
		Center: GeoPoint{Lat: 20.138, Lng: -99.2015},
		Radius: 100,
		Active: true,
	}

	t.Run("identical configuration", func(t *testing.T) {
		assert.True(t, base.Equal(base))
	})

	t.Run("inside flag is ignored", func(t *testing.T) {
		other := base
		other.IsInside = true
		assert.True(t, base.Equal(other))
	})

	t.Run("radius change breaks equality", func(t *testing.T) {
		other := base
		other.Radius = 150
		assert.False(t, base.Equal(other))
	})

	t.Run("rename breaks equality", func(t *testing.T) {
		other := base
		other.Name = "Trabajo"
		assert.False(t, base.Equal(other))
	})

	t.Run("toggle breaks equality", func(t *testing.T) {
		other := base
		other.Active = false
		assert.False(t, base.Equal(other))
	})
}

func TestGeofencesEqual(t *testing.T) {
	casa := Geofence{Slot: 1, Name: "Casa", Center: GeoPoint{Lat: 20.138, Lng: -99.2015}, Radius: 100, Active: true}
	trabajo := Geofence{Slot: 2, Name: "Trabajo", Center: GeoPoint{Lat: 20.2, Lng: -99.21}, Radius: 200, Active: true}

	assert.True(t, GeofencesEqual(nil, nil))
	assert.True(t, GeofencesEqual([]Geofence{casa, trabajo}, []Geofence{casa, trabajo}))
	assert.False(t, GeofencesEqual([]Geofence{casa}, []Geofence{casa, trabajo}))

	// Radius edit on one slot
	resized := casa
	resized.Radius = 150
	assert.False(t, GeofencesEqual([]Geofence{casa, trabajo}, []Geofence{resized, trabajo}))

	// Inside flags never affect the comparison
	visited := casa
	visited.IsInside = true
	assert.True(t, GeofencesEqual([]Geofence{casa}, []Geofence{visited}))
}

func TestGeofenceEventMessage(t *testing.T) {
	enter := GeofenceEvent{FenceName: "Casa", Type: GeofenceEventEnter}
	assert.Equal(t, "entering Casa", enter.Message())

	exit := GeofenceEvent{FenceName: "Casa", Type: GeofenceEventExit}
	assert.Equal(t, "exiting Casa", exit.Message())
}
