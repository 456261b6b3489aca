package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ridersafe/internal/models"
	"ridersafe/internal/utils"
)

func TestComputeSafety(t *testing.T) {
	t.Run("no events is safe", func(t *testing.T) {
		kpi := ComputeSafety(nil)
		assert.Equal(t, 0, kpi.TiltEvents)
		assert.Equal(t, "safe", kpi.Status)
	})

	t.Run("only tilt events count", func(t *testing.T) {
		events := []*models.Event{
			{Type: models.EventTypeTilt, Value: 55},
			{Type: models.EventTypeLock, On: true},
			{Type: models.EventTypeTilt, Value: 62},
		}
		kpi := ComputeSafety(events)
		assert.Equal(t, 2, kpi.TiltEvents)
		assert.Equal(t, "risk", kpi.Status)
	})
}

func TestComputeAdherence(t *testing.T) {
	center := models.GeoPoint{Lat: 20.138, Lng: -99.2015}
	fence := models.Geofence{Slot: 1, Name: "Casa", Center: center, Radius: 200, Active: true}
	inside := &models.GeoPoint{Lat: 20.138, Lng: -99.2015}
	outside := &models.GeoPoint{Lat: 20.15, Lng: -99.2015}

	t.Run("no pings is no data", func(t *testing.T) {
		kpi := ComputeAdherence(nil, []models.Geofence{fence})
		assert.Equal(t, utils.KPIStatusNoData, kpi.Status)
	})

	t.Run("no active fences is no data", func(t *testing.T) {
		off := fence
		off.Active = false
		kpi := ComputeAdherence([]*models.Ping{{Location: inside}}, []models.Geofence{off})
		assert.Equal(t, utils.KPIStatusNoData, kpi.Status)
	})

	t.Run("all inside is green", func(t *testing.T) {
		pings := []*models.Ping{{Location: inside}, {Location: inside}}
		kpi := ComputeAdherence(pings, []models.Geofence{fence})
		assert.Equal(t, 100.0, kpi.Percentage)
		assert.Equal(t, utils.KPIStatusGreen, kpi.Status)
	})

	t.Run("half inside is amber", func(t *testing.T) {
		pings := []*models.Ping{{Location: inside}, {Location: outside}}
		kpi := ComputeAdherence(pings, []models.Geofence{fence})
		assert.Equal(t, 50.0, kpi.Percentage)
		assert.Equal(t, utils.KPIStatusAmber, kpi.Status)
	})

	t.Run("one of three is red", func(t *testing.T) {
		pings := []*models.Ping{{Location: inside}, {Location: outside}, {Location: outside}}
		kpi := ComputeAdherence(pings, []models.Geofence{fence})
		assert.Equal(t, 33.3, kpi.Percentage)
		assert.Equal(t, utils.KPIStatusRed, kpi.Status)
	})

	t.Run("nil locations read as outside", func(t *testing.T) {
		pings := []*models.Ping{{Location: inside}, {Location: nil}}
		kpi := ComputeAdherence(pings, []models.Geofence{fence})
		assert.Equal(t, 50.0, kpi.Percentage)
	})
}

func TestComputeUsage(t *testing.T) {
	day := func(distance string) *models.HistoryDay {
		return &models.HistoryDay{Summary: models.HistorySummary{Distance: distance}}
	}

	t.Run("sums numeric km strings", func(t *testing.T) {
		days := []*models.HistoryDay{day("1.5 km"), day("2.0 km"), day("not recorded")}
		assert.Equal(t, 3.5, ComputeUsage(days).TotalKm)
	})

	t.Run("empty window", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeUsage(nil).TotalKm)
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		days := []*models.HistoryDay{day("1.24 km"), day("2.24 km")}
		assert.Equal(t, 3.5, ComputeUsage(days).TotalKm)
	})
}

func TestComputeBatteryHealth(t *testing.T) {
	ping := func(battery float64) *models.Ping {
		return &models.Ping{Battery: battery}
	}

	t.Run("no pings is no data", func(t *testing.T) {
		assert.Equal(t, utils.KPIStatusNoData, ComputeBatteryHealth(nil).Status)
	})

	t.Run("healthy minimum is green", func(t *testing.T) {
		kpi := ComputeBatteryHealth([]*models.Ping{ping(90), ping(72), ping(65)})
		assert.Equal(t, 65.0, kpi.MinBattery)
		assert.Equal(t, utils.KPIStatusGreen, kpi.Status)
	})

	t.Run("dip below fifty is amber", func(t *testing.T) {
		kpi := ComputeBatteryHealth([]*models.Ping{ping(80), ping(49.9)})
		assert.Equal(t, utils.KPIStatusAmber, kpi.Status)
	})

	t.Run("dip below twenty is red", func(t *testing.T) {
		kpi := ComputeBatteryHealth([]*models.Ping{ping(80), ping(12)})
		assert.Equal(t, 12.0, kpi.MinBattery)
		assert.Equal(t, utils.KPIStatusRed, kpi.Status)
	})
}
