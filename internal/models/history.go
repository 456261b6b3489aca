package models

// HistorySummary describes one day of activity. Distance is a display
// string like "3.2 km"; days without a recorded route carry "not recorded".
type HistorySummary struct {
	Title    string  `json:"title" bson:"title"`
	Distance string  `json:"distance" bson:"distance"`
	MaxSpeed float64 `json:"max_speed" bson:"max_speed"`
}

// RoutePoint is a named stop along a day's route.
type RoutePoint struct {
	Name     string  `json:"name" bson:"name"`
	Duration string  `json:"duration" bson:"duration"`
	Lat      float64 `json:"lat" bson:"lat"`
	Lng      float64 `json:"lng" bson:"lng"`
}

// HistoryDay carries one day (YYYY-MM-DD) of a vehicle's history. The
// document key combines vehicle id and day so each pair stores one doc.
type HistoryDay struct {
	ID          string         `json:"-" bson:"_id,omitempty"`
	VehicleID   string         `json:"vehicle_id" bson:"vehicle_id"`
	Day         string         `json:"day" bson:"day"`
	Summary     HistorySummary `json:"summary" bson:"summary"`
	RoutePoints []RoutePoint   `json:"route_points" bson:"route_points"`
}

// Key derives the composite document id.
func (h *HistoryDay) Key() string {
	return h.VehicleID + ":" + h.Day
}

// EmptyHistoryDay is the default shown for days with no recorded route.
func EmptyHistoryDay(day, vehicleID string) *HistoryDay {
	return &HistoryDay{
		Day:       day,
		VehicleID: vehicleID,
		Summary: HistorySummary{
			Title:    "No route recorded",
			Distance: "not recorded",
			MaxSpeed: 0,
		},
		RoutePoints: []RoutePoint{},
	}
}
