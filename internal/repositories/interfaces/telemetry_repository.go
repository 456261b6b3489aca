package interfaces

import (
	"context"

	"ridersafe/internal/models"
)

type TelemetryRepository interface {
	InsertPing(ctx context.Context, ping *models.Ping) error
	InsertEvent(ctx context.Context, event *models.Event) error

	// RecentPings returns up to limit samples, newest first.
	RecentPings(ctx context.Context, vehicleID string, limit int) ([]*models.Ping, error)
	RecentEvents(ctx context.Context, vehicleID string, limit int) ([]*models.Event, error)

	GetHistoryDay(ctx context.Context, vehicleID, day string) (*models.HistoryDay, error)
	RecentHistoryDays(ctx context.Context, vehicleID string, days int) ([]*models.HistoryDay, error)
	UpsertHistoryDay(ctx context.Context, historyDay *models.HistoryDay) error
}
