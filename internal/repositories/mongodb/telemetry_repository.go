package mongodb

import (
	"context"
	"fmt"
	"time"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type telemetryRepository struct {
	pings   *mongo.Collection
	events  *mongo.Collection
	history *mongo.Collection
}

func NewTelemetryRepository(db *mongo.Database) interfaces.TelemetryRepository {
	return &telemetryRepository{
		pings:   db.Collection("pings"),
		events:  db.Collection("events"),
		history: db.Collection("history_days"),
	}
}

func (r *telemetryRepository) InsertPing(ctx context.Context, ping *models.Ping) error {
	ping.ID = primitive.NewObjectID()
	if ping.Timestamp.IsZero() {
		ping.Timestamp = time.Now()
	}

	_, err := r.pings.InsertOne(ctx, ping)
	if err != nil {
		return fmt.Errorf("failed to insert ping: %w", err)
	}

	return nil
}

func (r *telemetryRepository) InsertEvent(ctx context.Context, event *models.Event) error {
	event.ID = primitive.NewObjectID()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	_, err := r.events.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

func (r *telemetryRepository) RecentPings(ctx context.Context, vehicleID string, limit int) ([]*models.Ping, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.pings.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pings: %w", err)
	}
	defer cursor.Close(ctx)

	var pings []*models.Ping
	if err := cursor.All(ctx, &pings); err != nil {
		return nil, fmt.Errorf("failed to decode pings: %w", err)
	}

	return pings, nil
}

func (r *telemetryRepository) RecentEvents(ctx context.Context, vehicleID string, limit int) ([]*models.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.events.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	return events, nil
}

func (r *telemetryRepository) GetHistoryDay(ctx context.Context, vehicleID, day string) (*models.HistoryDay, error) {
	var historyDay models.HistoryDay
	err := r.history.FindOne(ctx, bson.M{"_id": vehicleID + ":" + day}).Decode(&historyDay)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("history for %s on %s: %w", vehicleID, day, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get history day: %w", err)
	}

	return &historyDay, nil
}

func (r *telemetryRepository) RecentHistoryDays(ctx context.Context, vehicleID string, days int) ([]*models.HistoryDay, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "day", Value: -1}}).
		SetLimit(int64(days))

	cursor, err := r.history.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list history days: %w", err)
	}
	defer cursor.Close(ctx)

	var historyDays []*models.HistoryDay
	if err := cursor.All(ctx, &historyDays); err != nil {
		return nil, fmt.Errorf("failed to decode history days: %w", err)
	}

	return historyDays, nil
}

func (r *telemetryRepository) UpsertHistoryDay(ctx context.Context, historyDay *models.HistoryDay) error {
	historyDay.ID = historyDay.Key()
	opts := options.Replace().SetUpsert(true)

	_, err := r.history.ReplaceOne(
		ctx,
		bson.M{"_id": historyDay.ID},
		historyDay,
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert history day: %w", err)
	}

	return nil
}
