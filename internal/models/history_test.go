package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryDayKey(t *testing.T) {
	day := &HistoryDay{VehicleID: "MOTO-01", Day: "2026-08-30"}
	assert.Equal(t, "MOTO-01:2026-08-30", day.Key())

	// Same date, different vehicles, distinct keys
	other := &HistoryDay{VehicleID: "MOTO-02", Day: "2026-08-30"}
	assert.NotEqual(t, day.Key(), other.Key())
}

func TestEmptyHistoryDay(t *testing.T) {
	day := EmptyHistoryDay("2026-08-30", "MOTO-01")

	assert.Equal(t, "2026-08-30", day.Day)
	assert.Equal(t, "MOTO-01", day.VehicleID)
	assert.Equal(t, "No route recorded", day.Summary.Title)
	assert.Equal(t, "not recorded", day.Summary.Distance)
	assert.Zero(t, day.Summary.MaxSpeed)
	assert.NotNil(t, day.RoutePoints)
	assert.Empty(t, day.RoutePoints)
}
