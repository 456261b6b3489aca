package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
	"ridersafe/pkg/database"
	"ridersafe/pkg/logger"
	"ridersafe/pkg/websocket"
)

var ErrVehicleNotOwned = errors.New("vehicle does not belong to this user")

// TelemetryService owns the live vehicle pipeline: each websocket
// connection gets a session that follows one device document through a
// change stream, re-derives geofence state on every update, and raises
// alerts on enter/exit, tilt and lock transitions.
type TelemetryService struct {
	db          *database.MongoDB
	vehicleRepo interfaces.VehicleRepository
	geofences   GeofenceService
	notifier    NotificationService
	logger      *logger.Logger
}

func NewTelemetryService(db *database.MongoDB, vehicleRepo interfaces.VehicleRepository, geofences GeofenceService, notifier NotificationService, log *logger.Logger) *TelemetryService {
	return &TelemetryService{
		db:          db,
		vehicleRepo: vehicleRepo,
		geofences:   geofences,
		notifier:    notifier,
		logger:      log,
	}
}

// SetNotifier breaks the construction cycle with the websocket handler:
// the handler needs the factory, the notifier needs the handler.
func (s *TelemetryService) SetNotifier(notifier NotificationService) {
	s.notifier = notifier
}

func (s *TelemetryService) NewSession(userID primitive.ObjectID, push func(websocket.Message)) websocket.Session {
	return &telemetrySession{
		service: s,
		userID:  userID,
		push:    push,
	}
}

type telemetrySession struct {
	service *TelemetryService
	userID  primitive.ObjectID
	push    func(websocket.Message)

	mu        sync.Mutex
	vehicleID string
	cancel    context.CancelFunc
	liveness  *time.Timer
	previous  []models.Geofence
	lastState *models.VehicleState
	lastTilt  float64
	lastLock  bool
	seeded    bool
}

// Watch switches the session to a new vehicle. Any previous subscription
// is torn down first so a session never follows two devices at once.
func (t *telemetrySession) Watch(vehicleID string) error {
	ctx := context.Background()

	vehicle, err := t.service.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.UserID != t.userID {
		return ErrVehicleNotOwned
	}

	t.mu.Lock()
	t.teardownLocked()
	streamCtx, cancel := context.WithCancel(context.Background())
	t.vehicleID = vehicleID
	t.cancel = cancel
	t.previous = nil
	t.seeded = false
	t.mu.Unlock()

	// Seed from the current document before the stream starts so the
	// client renders immediately.
	t.apply(ctx, vehicle)

	stream, err := t.service.db.WatchDocument(streamCtx, "devices", vehicleID)
	if err != nil {
		cancel()
		return err
	}

	go t.follow(streamCtx, stream, vehicleID)
	return nil
}

func (t *telemetrySession) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.teardownLocked()
}

func (t *telemetrySession) teardownLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.liveness != nil {
		t.liveness.Stop()
		t.liveness = nil
	}
}

func (t *telemetrySession) follow(ctx context.Context, stream *mongo.ChangeStream, vehicleID string) {
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var change struct {
			FullDocument *models.Vehicle `bson:"fullDocument"`
		}
		if err := stream.Decode(&change); err != nil {
			t.service.logger.WithError(err).WithVehicleID(vehicleID).Error("Failed to decode change stream document")
			continue
		}
		if change.FullDocument == nil {
			continue
		}
		t.apply(ctx, change.FullDocument)
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		t.service.logger.WithError(err).WithVehicleID(vehicleID).Error("Change stream terminated")
		t.push(websocket.Message{
			Type:      "stream_error",
			UserID:    t.userID,
			Timestamp: time.Now().Unix(),
			Data: map[string]interface{}{
				"vehicle_id": vehicleID,
			},
		})
	}
}

// apply reconciles one document snapshot: geofence diffing, alert edges,
// liveness reset, then the state push.
func (t *telemetrySession) apply(ctx context.Context, vehicle *models.Vehicle) {
	t.mu.Lock()
	if vehicle.ID != t.vehicleID {
		t.mu.Unlock()
		return
	}

	current := vehicle.ParseGeofences()
	redraw := t.seeded && !models.GeofencesEqual(t.previous, current)

	evaluated, events := t.service.geofences.Evaluate(vehicle.ID, vehicle.Location, t.previous, current)

	tiltEdge := t.seeded && vehicle.Tilt > 0 && t.lastTilt == 0
	lockEdge := t.seeded && vehicle.Locked != t.lastLock

	state := vehicle.StateView()
	state.Geofences = evaluated
	state.Connected = true

	t.previous = evaluated
	t.lastState = state
	t.lastTilt = vehicle.Tilt
	t.lastLock = vehicle.Locked
	t.seeded = true
	t.resetLivenessLocked(vehicle.ID)
	t.mu.Unlock()

	if redraw {
		t.push(websocket.Message{
			Type:      "geofence_redraw",
			UserID:    t.userID,
			Timestamp: time.Now().Unix(),
			Data: map[string]interface{}{
				"vehicle_id": vehicle.ID,
				"geofences":  evaluated,
			},
		})
	}

	for _, event := range events {
		t.service.notifier.NotifyGeofenceEvent(ctx, vehicle, event)
	}
	if tiltEdge {
		t.service.notifier.NotifyTilt(ctx, vehicle)
	}
	if lockEdge {
		t.service.notifier.NotifyLock(ctx, vehicle, vehicle.Locked)
	}

	t.push(websocket.Message{
		Type:      "vehicle_state",
		UserID:    t.userID,
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"vehicle_id": vehicle.ID,
			"state":      state,
		},
	})
}

// resetLivenessLocked restarts the stale-data timer. When no update
// arrives within the window the client is told the device went dark.
func (t *telemetrySession) resetLivenessLocked(vehicleID string) {
	if t.liveness != nil {
		t.liveness.Stop()
	}
	t.liveness = time.AfterFunc(utils.LivenessTimeout, func() {
		t.mu.Lock()
		if t.vehicleID != vehicleID {
			t.mu.Unlock()
			return
		}
		state := t.lastState
		if state != nil {
			state.Connected = false
		}
		t.mu.Unlock()

		t.push(websocket.Message{
			Type:      "vehicle_state",
			UserID:    t.userID,
			Timestamp: time.Now().Unix(),
			Data: map[string]interface{}{
				"vehicle_id": vehicleID,
				"state":      state,
				"connected":  false,
			},
		})
	})
}
