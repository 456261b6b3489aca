package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDistance(t *testing.T) {
	// Same point
	assert.Zero(t, CalculateDistance(20.138, -99.2015, 20.138, -99.2015))

	// One degree of latitude is roughly 111.2 km
	d := CalculateDistance(20.0, -99.0, 21.0, -99.0)
	assert.InDelta(t, 111195, d, 200)

	// Short hop between two points on the demo route, a few hundred meters
	d = CalculateDistance(20.20428, -99.22082, 20.20942, -99.21914)
	assert.Greater(t, d, 400.0)
	assert.Less(t, d, 800.0)
}

func TestIsWithinRadius(t *testing.T) {
	centerLat, centerLng := 20.138, -99.2015

	t.Run("point at center", func(t *testing.T) {
		assert.True(t, IsWithinRadius(centerLat, centerLng, centerLat, centerLng, 50))
	})

	t.Run("point inside", func(t *testing.T) {
		// ~111 meters north
		assert.True(t, IsWithinRadius(centerLat, centerLng, centerLat+0.001, centerLng, 150))
	})

	t.Run("point outside", func(t *testing.T) {
		assert.False(t, IsWithinRadius(centerLat, centerLng, centerLat+0.01, centerLng, 150))
	})

	t.Run("boundary counts as inside", func(t *testing.T) {
		distance := CalculateDistance(centerLat, centerLng, centerLat+0.001, centerLng)
		assert.True(t, IsWithinRadius(centerLat, centerLng, centerLat+0.001, centerLng, distance))
	})
}
