package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
	"ridersafe/pkg/logger"
)

type AnalyticsService interface {
	Report(ctx context.Context, vehicleID string) (*AnalyticsReport, error)
}

type AnalyticsReport struct {
	VehicleID    string                 `json:"vehicle_id"`
	Safety       SafetyKPI              `json:"safety"`
	Adherence    AdherenceKPI           `json:"adherence"`
	Usage        UsageKPI               `json:"usage"`
	Battery      BatteryKPI             `json:"battery"`
	RecentEvents []*models.Event        `json:"recent_events"`
	BatteryTrend []models.BatterySample `json:"battery_trend"`
}

type SafetyKPI struct {
	TiltEvents int    `json:"tilt_events"`
	Status     string `json:"status"`
}

type AdherenceKPI struct {
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

type UsageKPI struct {
	TotalKm float64 `json:"total_km"`
}

type BatteryKPI struct {
	MinBattery float64 `json:"min_battery"`
	Status     string  `json:"status"`
}

type analyticsService struct {
	telemetryRepo interfaces.TelemetryRepository
	vehicleRepo   interfaces.VehicleRepository
	logger        *logger.Logger
}

func NewAnalyticsService(telemetryRepo interfaces.TelemetryRepository, vehicleRepo interfaces.VehicleRepository, log *logger.Logger) AnalyticsService {
	return &analyticsService{
		telemetryRepo: telemetryRepo,
		vehicleRepo:   vehicleRepo,
		logger:        log,
	}
}

func (s *analyticsService) Report(ctx context.Context, vehicleID string) (*AnalyticsReport, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	pings, err := s.telemetryRepo.RecentPings(ctx, vehicleID, utils.AnalyticsPingLimit)
	if err != nil {
		return nil, err
	}
	// Repos return newest first; the trend chart wants chronological order.
	reversePings(pings)

	events, err := s.telemetryRepo.RecentEvents(ctx, vehicleID, utils.AnalyticsEventLimit)
	if err != nil {
		return nil, err
	}

	historyDays, err := s.telemetryRepo.RecentHistoryDays(ctx, vehicleID, utils.AnalyticsHistoryDays)
	if err != nil {
		return nil, err
	}

	trend := make([]models.BatterySample, 0, len(pings))
	for _, ping := range pings {
		trend = append(trend, models.BatterySample{
			Timestamp: ping.Timestamp,
			Battery:   ping.Battery,
		})
	}

	return &AnalyticsReport{
		VehicleID:    vehicleID,
		Safety:       ComputeSafety(events),
		Adherence:    ComputeAdherence(pings, vehicle.ParseGeofences()),
		Usage:        ComputeUsage(historyDays),
		Battery:      ComputeBatteryHealth(pings),
		RecentEvents: events,
		BatteryTrend: trend,
	}, nil
}

// ComputeSafety counts fall detections. Any tilt event flips the score to
// risk.
func ComputeSafety(events []*models.Event) SafetyKPI {
	count := 0
	for _, event := range events {
		if event.Type == models.EventTypeTilt {
			count++
		}
	}

	status := "safe"
	if count > 0 {
		status = "risk"
	}
	return SafetyKPI{TiltEvents: count, Status: status}
}

// ComputeAdherence is the share of pings that landed inside any active
// fence. Without pings or fences there is nothing to score.
func ComputeAdherence(pings []*models.Ping, fences []models.Geofence) AdherenceKPI {
	active := fences[:0:0]
	for _, fence := range fences {
		if fence.Active {
			active = append(active, fence)
		}
	}
	if len(pings) == 0 || len(active) == 0 {
		return AdherenceKPI{Status: utils.KPIStatusNoData}
	}

	inside := 0
	for _, ping := range pings {
		if ping.Location == nil {
			continue
		}
		for _, fence := range active {
			if utils.IsWithinRadius(fence.Center.Lat, fence.Center.Lng, ping.Location.Lat, ping.Location.Lng, fence.Radius) {
				inside++
				break
			}
		}
	}

	percentage := float64(inside) / float64(len(pings)) * 100

	status := utils.KPIStatusRed
	switch {
	case percentage >= 80:
		status = utils.KPIStatusGreen
	case percentage >= 50:
		status = utils.KPIStatusAmber
	}
	return AdherenceKPI{Percentage: math.Round(percentage*10) / 10, Status: status}
}

// ComputeUsage sums the "<n> km" distance strings over the history window.
// Days without a numeric distance contribute nothing.
func ComputeUsage(historyDays []*models.HistoryDay) UsageKPI {
	total := 0.0
	for _, day := range historyDays {
		value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(day.Summary.Distance), "km"))
		km, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		total += km
	}
	return UsageKPI{TotalKm: math.Round(total*10) / 10}
}

// ComputeBatteryHealth reports the worst battery level in the window.
func ComputeBatteryHealth(pings []*models.Ping) BatteryKPI {
	if len(pings) == 0 {
		return BatteryKPI{Status: utils.KPIStatusNoData}
	}

	min := pings[0].Battery
	for _, ping := range pings[1:] {
		if ping.Battery < min {
			min = ping.Battery
		}
	}

	status := utils.KPIStatusGreen
	switch {
	case min < 20:
		status = utils.KPIStatusRed
	case min < 50:
		status = utils.KPIStatusAmber
	}
	return BatteryKPI{MinBattery: min, Status: status}
}

func reversePings(pings []*models.Ping) {
	for i, j := 0, len(pings)-1; i < j; i, j = i+1, j-1 {
		pings[i], pings[j] = pings[j], pings[i]
	}
}
