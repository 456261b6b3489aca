package services

import (
	"context"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
	"ridersafe/pkg/logger"
	"ridersafe/pkg/push"
	"ridersafe/pkg/websocket"
)

// NotificationService fans safety alerts out to the owner: the live
// websocket room always, FCM only when the user has a registered token.
type NotificationService interface {
	NotifyGeofenceEvent(ctx context.Context, vehicle *models.Vehicle, event models.GeofenceEvent)
	NotifyTilt(ctx context.Context, vehicle *models.Vehicle)
	NotifyLock(ctx context.Context, vehicle *models.Vehicle, locked bool)
}

type notificationService struct {
	userRepo     interfaces.UserRepository
	pushProvider push.PushProvider
	wsHandler    *websocket.Handler
	logger       *logger.Logger
}

func NewNotificationService(userRepo interfaces.UserRepository, pushProvider push.PushProvider, wsHandler *websocket.Handler, log *logger.Logger) NotificationService {
	return &notificationService{
		userRepo:     userRepo,
		pushProvider: pushProvider,
		wsHandler:    wsHandler,
		logger:       log,
	}
}

func (s *notificationService) NotifyGeofenceEvent(ctx context.Context, vehicle *models.Vehicle, event models.GeofenceEvent) {
	s.notify(ctx, vehicle, "geofence", event.Message(), map[string]interface{}{
		"slot":       event.Slot,
		"fence_name": event.FenceName,
		"event":      string(event.Type),
	})
}

func (s *notificationService) NotifyTilt(ctx context.Context, vehicle *models.Vehicle) {
	s.notify(ctx, vehicle, "tilt", "Possible fall detected", nil)
}

func (s *notificationService) NotifyLock(ctx context.Context, vehicle *models.Vehicle, locked bool) {
	message := "Vehicle unlocked"
	if locked {
		message = "Vehicle locked"
	}
	s.notify(ctx, vehicle, "lock", message, map[string]interface{}{
		"locked": locked,
	})
}

func (s *notificationService) notify(ctx context.Context, vehicle *models.Vehicle, alertType, message string, extra map[string]interface{}) {
	data := map[string]interface{}{
		"alert_type":       alertType,
		"message":          message,
		"dismiss_after_ms": utils.AlertDismissAfter.Milliseconds(),
	}
	for k, v := range extra {
		data[k] = v
	}

	s.wsHandler.SendVehicleUpdate(vehicle.ID, "alert", data)
	s.sendPush(ctx, vehicle, message)

	s.logger.LogVehicleEvent(vehicle.ID, "alert_"+alertType, map[string]interface{}{
		"message": message,
	})
}

// sendPush is best effort. Delivery failures never surface to the caller.
func (s *notificationService) sendPush(ctx context.Context, vehicle *models.Vehicle, message string) {
	if s.pushProvider == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, vehicle.UserID)
	if err != nil {
		s.logger.WithError(err).WithVehicleID(vehicle.ID).Warn("Failed to load owner for push notification")
		return
	}
	if user.FCMToken == "" {
		return
	}

	name := vehicle.FriendlyName
	if name == "" {
		name = vehicle.ID
	}

	_, err = s.pushProvider.SendNotification(ctx, &push.NotificationRequest{
		Token:    user.FCMToken,
		Title:    name,
		Body:     message,
		Priority: "high",
		Data: map[string]string{
			"vehicle_id": vehicle.ID,
		},
	})
	if err != nil {
		s.logger.WithError(err).WithVehicleID(vehicle.ID).Warn("Push notification delivery failed")
	}
}
