package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestParseGeofences(t *testing.T) {
	point := &GeoPoint{Lat: 20.138, Lng: -99.2015}

	t.Run("fully configured slot", func(t *testing.T) {
		v := &Vehicle{Geo1: point, Geo1Name: "Casa", Geo1Radius: floatPtr(100), Geo1Active: true}
		fences := v.ParseGeofences()
		require.Len(t, fences, 1)
		assert.Equal(t, 1, fences[0].Slot)
		assert.Equal(t, "Casa", fences[0].Name)
		assert.Equal(t, 100.0, fences[0].Radius)
		assert.True(t, fences[0].Active)
	})

	t.Run("slot missing point is skipped", func(t *testing.T) {
		v := &Vehicle{Geo1Name: "Casa", Geo1Radius: floatPtr(100)}
		assert.Empty(t, v.ParseGeofences())
	})

	t.Run("slot missing name is skipped", func(t *testing.T) {
		v := &Vehicle{Geo1: point, Geo1Radius: floatPtr(100)}
		assert.Empty(t, v.ParseGeofences())
	})

	t.Run("slot missing radius is skipped", func(t *testing.T) {
		v := &Vehicle{Geo1: point, Geo1Name: "Casa"}
		assert.Empty(t, v.ParseGeofences())
	})

	t.Run("inactive slot still parses", func(t *testing.T) {
		v := &Vehicle{Geo2: point, Geo2Name: "Trabajo", Geo2Radius: floatPtr(200)}
		fences := v.ParseGeofences()
		require.Len(t, fences, 1)
		assert.Equal(t, 2, fences[0].Slot)
		assert.False(t, fences[0].Active)
	})

	t.Run("slots come back in slot order", func(t *testing.T) {
		v := &Vehicle{
			Geo3: point, Geo3Name: "Escuela", Geo3Radius: floatPtr(50),
			Geo1: point, Geo1Name: "Casa", Geo1Radius: floatPtr(100),
		}
		fences := v.ParseGeofences()
		require.Len(t, fences, 2)
		assert.Equal(t, 1, fences[0].Slot)
		assert.Equal(t, 3, fences[1].Slot)
	})
}

func TestFreeSlot(t *testing.T) {
	point := &GeoPoint{Lat: 20.138, Lng: -99.2015}

	assert.Equal(t, 1, (&Vehicle{}).FreeSlot())

	v := &Vehicle{Geo1: point, Geo1Name: "Casa", Geo1Radius: floatPtr(100)}
	assert.Equal(t, 2, v.FreeSlot())

	// Slot 2 empty, slot 1 and 3 taken
	v = &Vehicle{
		Geo1: point, Geo1Name: "Casa", Geo1Radius: floatPtr(100),
		Geo3: point, Geo3Name: "Escuela", Geo3Radius: floatPtr(50),
	}
	assert.Equal(t, 2, v.FreeSlot())

	v = &Vehicle{
		Geo1: point, Geo1Name: "Casa", Geo1Radius: floatPtr(100),
		Geo2: point, Geo2Name: "Trabajo", Geo2Radius: floatPtr(200),
		Geo3: point, Geo3Name: "Escuela", Geo3Radius: floatPtr(50),
	}
	assert.Equal(t, 0, v.FreeSlot())
}

func TestStateView(t *testing.T) {
	v := &Vehicle{
		ID:           "MOTO-01",
		FriendlyName: "Mi Moto",
		Battery:      72,
		Speed:        31,
		Locked:       true,
		Location:     &GeoPoint{Lat: 20.2, Lng: -99.21},
		Geo1:         &GeoPoint{Lat: 20.138, Lng: -99.2015},
		Geo1Name:     "Casa",
		Geo1Radius:   floatPtr(100),
	}

	state := v.StateView()
	assert.Equal(t, "MOTO-01", state.VehicleID)
	assert.Equal(t, "Mi Moto", state.FriendlyName)
	assert.Equal(t, 72.0, state.Battery)
	assert.True(t, state.Locked)
	assert.Len(t, state.Geofences, 1)
	assert.False(t, state.Connected)
}
