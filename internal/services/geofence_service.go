package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
	"ridersafe/pkg/logger"
)

var (
	ErrNoFreeSlot    = errors.New("all geofence slots are in use")
	ErrSlotNotFound  = errors.New("geofence slot is not configured")
	ErrInvalidRadius = fmt.Errorf("geofence radius must be at least %.0f meters", utils.MinGeofenceRadius)
)

type GeofenceService interface {
	// Evaluate derives the inside/outside flag for every fence and the
	// enter/exit events relative to the previous evaluation. Pure, no I/O.
	Evaluate(vehicleID string, pos *models.GeoPoint, previous, current []models.Geofence) ([]models.Geofence, []models.GeofenceEvent)

	SaveGeofence(ctx context.Context, request *SaveGeofenceRequest) (*models.Geofence, error)
	ToggleGeofence(ctx context.Context, vehicleID string, slot int, active bool) error
	RemoveGeofence(ctx context.Context, vehicleID string, slot int) error
	ListGeofences(ctx context.Context, vehicleID string) ([]models.Geofence, error)
}

type SaveGeofenceRequest struct {
	VehicleID string  `json:"vehicle_id" validate:"required"`
	Slot      int     `json:"slot"`
	Name      string  `json:"name" validate:"required"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Radius    float64 `json:"radius" validate:"required"`
	Active    bool    `json:"active"`
}

type geofenceService struct {
	vehicleRepo interfaces.VehicleRepository
	logger      *logger.Logger
}

func NewGeofenceService(vehicleRepo interfaces.VehicleRepository, log *logger.Logger) GeofenceService {
	return &geofenceService{
		vehicleRepo: vehicleRepo,
		logger:      log,
	}
}

func (s *geofenceService) Evaluate(vehicleID string, pos *models.GeoPoint, previous, current []models.Geofence) ([]models.Geofence, []models.GeofenceEvent) {
	evaluated := make([]models.Geofence, len(current))
	var events []models.GeofenceEvent

	for i, fence := range current {
		inside := false
		if pos != nil && fence.Active {
			inside = utils.IsWithinRadius(fence.Center.Lat, fence.Center.Lng, pos.Lat, pos.Lng, fence.Radius)
		}

		// A fence with no prior record counts as previously outside.
		wasInside := false
		if i < len(previous) {
			wasInside = previous[i].IsInside
		}

		fence.IsInside = inside
		evaluated[i] = fence

		if inside == wasInside {
			continue
		}

		eventType := models.GeofenceEventExit
		if inside {
			eventType = models.GeofenceEventEnter
		}
		events = append(events, models.GeofenceEvent{
			VehicleID: vehicleID,
			Slot:      fence.Slot,
			FenceName: fence.Name,
			Type:      eventType,
			Timestamp: time.Now(),
		})
	}

	return evaluated, events
}

func (s *geofenceService) SaveGeofence(ctx context.Context, request *SaveGeofenceRequest) (*models.Geofence, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !utils.IsValidCoordinates(request.Lat, request.Lng) {
		return nil, fmt.Errorf("invalid coordinates")
	}
	if request.Radius < utils.MinGeofenceRadius {
		return nil, ErrInvalidRadius
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, request.VehicleID)
	if err != nil {
		return nil, err
	}

	slot := request.Slot
	if slot == 0 {
		// New fences take the first free slot.
		slot = vehicle.FreeSlot()
		if slot == 0 {
			return nil, ErrNoFreeSlot
		}
	}
	if slot < 1 || slot > utils.MaxGeofenceSlots {
		return nil, fmt.Errorf("geofence slot must be between 1 and %d", utils.MaxGeofenceSlots)
	}

	fence := &models.Geofence{
		Slot:   slot,
		Name:   request.Name,
		Center: models.GeoPoint{Lat: request.Lat, Lng: request.Lng},
		Radius: request.Radius,
		Active: request.Active,
	}

	if err := s.vehicleRepo.SaveGeofenceSlot(ctx, request.VehicleID, slot, fence); err != nil {
		return nil, err
	}

	s.logger.WithVehicleID(request.VehicleID).
		WithField("slot", slot).
		WithField("fence", fence.Name).
		Info("Geofence saved")

	return fence, nil
}

func (s *geofenceService) ToggleGeofence(ctx context.Context, vehicleID string, slot int, active bool) error {
	if err := s.requireSlot(ctx, vehicleID, slot); err != nil {
		return err
	}

	return s.vehicleRepo.SetGeofenceActive(ctx, vehicleID, slot, active)
}

func (s *geofenceService) RemoveGeofence(ctx context.Context, vehicleID string, slot int) error {
	if err := s.requireSlot(ctx, vehicleID, slot); err != nil {
		return err
	}

	return s.vehicleRepo.ClearGeofenceSlot(ctx, vehicleID, slot)
}

func (s *geofenceService) ListGeofences(ctx context.Context, vehicleID string) ([]models.Geofence, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	return vehicle.ParseGeofences(), nil
}

func (s *geofenceService) requireSlot(ctx context.Context, vehicleID string, slot int) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	for _, fence := range vehicle.ParseGeofences() {
		if fence.Slot == slot {
			return nil
		}
	}
	return ErrSlotNotFound
}
