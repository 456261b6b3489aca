package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/pkg/logger"
)

// mockVehicleRepo implements interfaces.VehicleRepository for testing.
type mockVehicleRepo struct {
	vehicles map[string]*models.Vehicle
	getErr   error

	savedSlot   int
	savedFence  *models.Geofence
	clearedSlot int
	toggledSlot int
	toggledTo   bool
}

func newMockVehicleRepo(vehicles ...*models.Vehicle) *mockVehicleRepo {
	m := &mockVehicleRepo{vehicles: make(map[string]*models.Vehicle)}
	for _, v := range vehicles {
		m.vehicles[v.ID] = v
	}
	return m
}

func (m *mockVehicleRepo) Create(_ context.Context, vehicle *models.Vehicle) error {
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *mockVehicleRepo) GetByID(_ context.Context, id string) (*models.Vehicle, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return vehicle, nil
}

func (m *mockVehicleRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, v := range m.vehicles {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockVehicleRepo) Update(_ context.Context, _ string, _ map[string]interface{}) error {
	return nil
}

func (m *mockVehicleRepo) Rename(_ context.Context, id string, friendlyName string) error {
	if v, ok := m.vehicles[id]; ok {
		v.FriendlyName = friendlyName
	}
	return nil
}

func (m *mockVehicleRepo) SaveGeofenceSlot(_ context.Context, _ string, slot int, fence *models.Geofence) error {
	m.savedSlot = slot
	m.savedFence = fence
	return nil
}

func (m *mockVehicleRepo) ClearGeofenceSlot(_ context.Context, _ string, slot int) error {
	m.clearedSlot = slot
	return nil
}

func (m *mockVehicleRepo) SetGeofenceActive(_ context.Context, _ string, slot int, active bool) error {
	m.toggledSlot = slot
	m.toggledTo = active
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func TestEvaluate(t *testing.T) {
	svc := NewGeofenceService(newMockVehicleRepo(), testLogger(t))

	casa := models.Geofence{
		Slot:   1,
		Name:   "Casa",
		Center: models.GeoPoint{Lat: 20.138, Lng: -99.2015},
		Radius: 150,
		Active: true,
	}
	insideCasa := &models.GeoPoint{Lat: 20.138, Lng: -99.2015}
	outsideCasa := &models.GeoPoint{Lat: 20.15, Lng: -99.2015}

	t.Run("first observation inside fires enter", func(t *testing.T) {
		evaluated, events := svc.Evaluate("MOTO-01", insideCasa, nil, []models.Geofence{casa})
		require.Len(t, evaluated, 1)
		assert.True(t, evaluated[0].IsInside)
		require.Len(t, events, 1)
		assert.Equal(t, models.GeofenceEventEnter, events[0].Type)
		assert.Equal(t, "Casa", events[0].FenceName)
		assert.Equal(t, "MOTO-01", events[0].VehicleID)
	})

	t.Run("first observation outside fires nothing", func(t *testing.T) {
		evaluated, events := svc.Evaluate("MOTO-01", outsideCasa, nil, []models.Geofence{casa})
		assert.False(t, evaluated[0].IsInside)
		assert.Empty(t, events)
	})

	t.Run("leaving fires exit", func(t *testing.T) {
		previous, _ := svc.Evaluate("MOTO-01", insideCasa, nil, []models.Geofence{casa})
		evaluated, events := svc.Evaluate("MOTO-01", outsideCasa, previous, []models.Geofence{casa})
		assert.False(t, evaluated[0].IsInside)
		require.Len(t, events, 1)
		assert.Equal(t, models.GeofenceEventExit, events[0].Type)
	})

	t.Run("staying inside fires nothing", func(t *testing.T) {
		previous, _ := svc.Evaluate("MOTO-01", insideCasa, nil, []models.Geofence{casa})
		nearby := &models.GeoPoint{Lat: 20.1385, Lng: -99.2015}
		_, events := svc.Evaluate("MOTO-01", nearby, previous, []models.Geofence{casa})
		assert.Empty(t, events)
	})

	t.Run("inactive fence never matches", func(t *testing.T) {
		inactive := casa
		inactive.Active = false
		evaluated, events := svc.Evaluate("MOTO-01", insideCasa, nil, []models.Geofence{inactive})
		assert.False(t, evaluated[0].IsInside)
		assert.Empty(t, events)
	})

	t.Run("nil position reads as outside", func(t *testing.T) {
		previous, _ := svc.Evaluate("MOTO-01", insideCasa, nil, []models.Geofence{casa})
		evaluated, events := svc.Evaluate("MOTO-01", nil, previous, []models.Geofence{casa})
		assert.False(t, evaluated[0].IsInside)
		require.Len(t, events, 1)
		assert.Equal(t, models.GeofenceEventExit, events[0].Type)
	})

	t.Run("growing the radius swallows the point", func(t *testing.T) {
		// ~550 m north of center: outside a 150 m fence, inside once the
		// fence grows to 600 m.
		point := &models.GeoPoint{Lat: 20.143, Lng: -99.2015}
		previous, events := svc.Evaluate("MOTO-01", point, nil, []models.Geofence{casa})
		assert.Empty(t, events)

		grown := casa
		grown.Radius = 600
		evaluated, events := svc.Evaluate("MOTO-01", point, previous, []models.Geofence{grown})
		assert.True(t, evaluated[0].IsInside)
		require.Len(t, events, 1)
		assert.Equal(t, models.GeofenceEventEnter, events[0].Type)
	})
}

func TestSaveGeofence(t *testing.T) {
	ctx := context.Background()
	point := models.GeoPoint{Lat: 20.138, Lng: -99.2015}

	t.Run("takes first free slot", func(t *testing.T) {
		repo := newMockVehicleRepo(&models.Vehicle{ID: "MOTO-01"})
		svc := NewGeofenceService(repo, testLogger(t))

		fence, err := svc.SaveGeofence(ctx, &SaveGeofenceRequest{
			VehicleID: "MOTO-01",
			Name:      "Casa",
			Lat:       point.Lat,
			Lng:       point.Lng,
			Radius:    100,
			Active:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, fence.Slot)
		assert.Equal(t, 1, repo.savedSlot)
		assert.Equal(t, "Casa", repo.savedFence.Name)
	})

	t.Run("rejects when all slots taken", func(t *testing.T) {
		radius := 100.0
		full := &models.Vehicle{
			ID:   "MOTO-01",
			Geo1: &point, Geo1Name: "A", Geo1Radius: &radius,
			Geo2: &point, Geo2Name: "B", Geo2Radius: &radius,
			Geo3: &point, Geo3Name: "C", Geo3Radius: &radius,
		}
		svc := NewGeofenceService(newMockVehicleRepo(full), testLogger(t))

		_, err := svc.SaveGeofence(ctx, &SaveGeofenceRequest{
			VehicleID: "MOTO-01",
			Name:      "D",
			Lat:       point.Lat,
			Lng:       point.Lng,
			Radius:    100,
		})
		assert.ErrorIs(t, err, ErrNoFreeSlot)
	})

	t.Run("rejects small radius", func(t *testing.T) {
		svc := NewGeofenceService(newMockVehicleRepo(&models.Vehicle{ID: "MOTO-01"}), testLogger(t))

		_, err := svc.SaveGeofence(ctx, &SaveGeofenceRequest{
			VehicleID: "MOTO-01",
			Name:      "Casa",
			Lat:       point.Lat,
			Lng:       point.Lng,
			Radius:    49,
		})
		assert.ErrorIs(t, err, ErrInvalidRadius)
	})

	t.Run("rejects bad coordinates", func(t *testing.T) {
		svc := NewGeofenceService(newMockVehicleRepo(&models.Vehicle{ID: "MOTO-01"}), testLogger(t))

		_, err := svc.SaveGeofence(ctx, &SaveGeofenceRequest{
			VehicleID: "MOTO-01",
			Name:      "Casa",
			Lat:       91,
			Lng:       0,
			Radius:    100,
		})
		assert.Error(t, err)
	})
}

func TestToggleAndRemoveGeofence(t *testing.T) {
	ctx := context.Background()
	point := models.GeoPoint{Lat: 20.138, Lng: -99.2015}
	radius := 100.0

	vehicle := &models.Vehicle{ID: "MOTO-01", Geo1: &point, Geo1Name: "Casa", Geo1Radius: &radius}
	repo := newMockVehicleRepo(vehicle)
	svc := NewGeofenceService(repo, testLogger(t))

	require.NoError(t, svc.ToggleGeofence(ctx, "MOTO-01", 1, true))
	assert.Equal(t, 1, repo.toggledSlot)
	assert.True(t, repo.toggledTo)

	assert.ErrorIs(t, svc.ToggleGeofence(ctx, "MOTO-01", 2, true), ErrSlotNotFound)

	require.NoError(t, svc.RemoveGeofence(ctx, "MOTO-01", 1))
	assert.Equal(t, 1, repo.clearedSlot)

	assert.ErrorIs(t, svc.RemoveGeofence(ctx, "MOTO-01", 3), ErrSlotNotFound)
}
