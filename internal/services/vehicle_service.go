package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
	"ridersafe/pkg/logger"
	"ridersafe/pkg/maps"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type VehicleService interface {
	ListVehicles(ctx context.Context, userID primitive.ObjectID) ([]*models.VehicleState, error)
	GetVehicle(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*models.Vehicle, error)
	GetState(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*models.VehicleState, error)
	Rename(ctx context.Context, userID primitive.ObjectID, vehicleID, friendlyName string) error
	GetHistory(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*VehicleHistory, error)
}

// VehicleHistory is the two-day view the dashboard renders: today plus
// yesterday, with placeholder days for gaps.
type VehicleHistory struct {
	Today     *models.HistoryDay `json:"today"`
	Yesterday *models.HistoryDay `json:"yesterday"`
}

type vehicleService struct {
	vehicleRepo   interfaces.VehicleRepository
	telemetryRepo interfaces.TelemetryRepository
	mapsProvider  maps.MapsProvider
	logger        *logger.Logger
}

func NewVehicleService(vehicleRepo interfaces.VehicleRepository, telemetryRepo interfaces.TelemetryRepository, mapsProvider maps.MapsProvider, log *logger.Logger) VehicleService {
	return &vehicleService{
		vehicleRepo:   vehicleRepo,
		telemetryRepo: telemetryRepo,
		mapsProvider:  mapsProvider,
		logger:        log,
	}
}

func (s *vehicleService) ListVehicles(ctx context.Context, userID primitive.ObjectID) ([]*models.VehicleState, error) {
	vehicles, err := s.vehicleRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	states := make([]*models.VehicleState, 0, len(vehicles))
	for _, vehicle := range vehicles {
		state := vehicle.StateView()
		state.Connected = isFresh(vehicle.Timestamp)
		states = append(states, state)
	}
	return states, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if vehicle.UserID != userID {
		return nil, ErrVehicleNotOwned
	}
	return vehicle, nil
}

func (s *vehicleService) GetState(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*models.VehicleState, error) {
	vehicle, err := s.GetVehicle(ctx, userID, vehicleID)
	if err != nil {
		return nil, err
	}

	state := vehicle.StateView()
	state.Connected = isFresh(vehicle.Timestamp)
	return state, nil
}

func (s *vehicleService) Rename(ctx context.Context, userID primitive.ObjectID, vehicleID, friendlyName string) error {
	friendlyName = strings.TrimSpace(friendlyName)
	if friendlyName == "" {
		return fmt.Errorf("friendly name is required")
	}
	if len(friendlyName) > 60 {
		return fmt.Errorf("friendly name is too long")
	}

	if _, err := s.GetVehicle(ctx, userID, vehicleID); err != nil {
		return err
	}

	if err := s.vehicleRepo.Rename(ctx, vehicleID, friendlyName); err != nil {
		return err
	}

	s.logger.LogVehicleEvent(vehicleID, "renamed", map[string]interface{}{
		"friendly_name": friendlyName,
	})
	return nil
}

func (s *vehicleService) GetHistory(ctx context.Context, userID primitive.ObjectID, vehicleID string) (*VehicleHistory, error) {
	if _, err := s.GetVehicle(ctx, userID, vehicleID); err != nil {
		return nil, err
	}

	now := time.Now()
	today := s.loadDay(ctx, vehicleID, utils.DayID(now))
	yesterday := s.loadDay(ctx, vehicleID, utils.DayID(now.AddDate(0, 0, -1)))

	return &VehicleHistory{Today: today, Yesterday: yesterday}, nil
}

func (s *vehicleService) loadDay(ctx context.Context, vehicleID, day string) *models.HistoryDay {
	historyDay, err := s.telemetryRepo.GetHistoryDay(ctx, vehicleID, day)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.WithError(err).WithVehicleID(vehicleID).Warn("Failed to load history day")
		}
		return models.EmptyHistoryDay(day, vehicleID)
	}

	s.resolveRouteNames(ctx, historyDay)
	return historyDay
}

// resolveRouteNames fills unnamed route points via reverse geocoding.
// Best effort; lookups that fail leave the point unnamed.
func (s *vehicleService) resolveRouteNames(ctx context.Context, day *models.HistoryDay) {
	if s.mapsProvider == nil {
		return
	}

	for i, point := range day.RoutePoints {
		if point.Name != "" || (point.Lat == 0 && point.Lng == 0) {
			continue
		}
		response, err := s.mapsProvider.ReverseGeocode(ctx, point.Lat, point.Lng)
		if err != nil || len(response.Results) == 0 {
			continue
		}
		day.RoutePoints[i].Name = response.Results[0].Address
	}
}

func isFresh(timestamp *time.Time) bool {
	return timestamp != nil && time.Since(*timestamp) <= utils.LivenessTimeout
}
