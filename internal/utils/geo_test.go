package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathLength(t *testing.T) {
	a := Point{Lat: 20.138, Lng: -99.2015}
	b := Point{Lat: 20.139, Lng: -99.2015}
	c := Point{Lat: 20.14, Lng: -99.2}

	t.Run("degenerate paths are zero", func(t *testing.T) {
		assert.Zero(t, PathLength(nil))
		assert.Zero(t, PathLength([]Point{a}))
	})

	t.Run("two points equal the haversine distance", func(t *testing.T) {
		assert.Equal(t, a.DistanceTo(b), PathLength([]Point{a, b}))
	})

	t.Run("legs add up", func(t *testing.T) {
		want := a.DistanceTo(b) + b.DistanceTo(c)
		assert.InDelta(t, want, PathLength([]Point{a, b, c}), 1e-9)
	})
}

func TestIsValidCoordinates(t *testing.T) {
	assert.True(t, IsValidCoordinates(20.138, -99.2015))
	assert.True(t, IsValidCoordinates(-90, 180))
	assert.False(t, IsValidCoordinates(90.1, 0))
	assert.False(t, IsValidCoordinates(0, -180.5))
}
