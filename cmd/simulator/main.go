package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"ridersafe/internal/models"
	mongoRepos "ridersafe/internal/repositories/mongodb"
	"ridersafe/internal/utils"
	"ridersafe/pkg/database"
)

// demoRoute is the recorded demo ride, GeoJSON point order (lng, lat).
var demoRoute = [][2]float64{
	{-99.22082, 20.20428}, {-99.22073, 20.20485}, {-99.2206, 20.20528}, {-99.22051, 20.20567},
	{-99.22051, 20.20567}, {-99.2204, 20.20572}, {-99.22023, 20.20579}, {-99.22018, 20.20581},
	{-99.22011, 20.20581}, {-99.22002, 20.2058}, {-99.22002, 20.2058}, {-99.21988, 20.20577},
	{-99.21969, 20.20653}, {-99.2194, 20.20795}, {-99.21914, 20.20942}, {-99.21914, 20.20942},
	{-99.21792, 20.21632}, {-99.21767, 20.21779}, {-99.21755, 20.2184}, {-99.21716, 20.22032},
	{-99.2171, 20.2206}, {-99.21703, 20.22096}, {-99.21698, 20.2212}, {-99.21695, 20.22134},
	{-99.21687, 20.22232}, {-99.21675, 20.22303}, {-99.21673, 20.22316}, {-99.21661, 20.22382},
	{-99.21624, 20.22562}, {-99.21602, 20.22683}, {-99.21582, 20.22775}, {-99.21558, 20.22877},
	{-99.21558, 20.22877}, {-99.21492, 20.22893}, {-99.21469, 20.22902}, {-99.21469, 20.22902},
	{-99.21466, 20.22927}, {-99.21407, 20.22919}, {-99.21407, 20.22919}, {-99.21403, 20.22946},
	{-99.21403, 20.22946}, {-99.21348, 20.22941}, {-99.21342, 20.22941}, {-99.21242, 20.22929},
	{-99.21131, 20.22914}, {-99.21033, 20.22903}, {-99.21033, 20.22903}, {-99.21012, 20.2302},
	{-99.21009, 20.23038}, {-99.20998, 20.23099}, {-99.20991, 20.23142}, {-99.20979, 20.23212},
	{-99.2097, 20.23264}, {-99.20962, 20.23308}, {-99.20957, 20.23337}, {-99.20957, 20.23337},
}

func main() {
	var (
		mongoURI  = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
		dbName    = flag.String("db", "ridersafe", "Database name")
		vehicleID = flag.String("vehicle", "", "Vehicle ID to drive (required)")
		delay     = flag.Duration("delay", 800*time.Millisecond, "Delay between route steps")
	)
	flag.Parse()

	if *vehicleID == "" {
		log.Fatal("-vehicle is required")
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            *mongoURI,
		Database:       *dbName,
		MaxPoolSize:    10,
		MinPoolSize:    1,
		ConnectTimeout: 10 * time.Second,
		SocketTimeout:  30 * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	vehicleRepo := mongoRepos.NewVehicleRepository(db.Database, nil)
	telemetryRepo := mongoRepos.NewTelemetryRepository(db.Database)

	if _, err := vehicleRepo.GetByID(ctx, *vehicleID); err != nil {
		log.Fatalf("Vehicle %s not found: %v", *vehicleID, err)
	}

	log.Printf("Driving demo route for %s (%d steps, %s per step)", *vehicleID, len(demoRoute), *delay)

	path := make([]utils.Point, len(demoRoute))
	for i, raw := range demoRoute {
		path[i] = utils.Point{Lat: raw[1], Lng: raw[0]}
	}
	distance := utils.PathLength(path)

	var (
		routePoints []models.RoutePoint
		locked      bool
		maxSpeed    float64
	)

	for i, raw := range demoRoute {
		lat, lng := raw[1], raw[0]

		speed := float64(rand.Intn(40) + 20)
		if speed > maxSpeed {
			maxSpeed = speed
		}
		battery := 100 - float64(i)/float64(len(demoRoute))*15
		if battery < 10 {
			battery = 10
		}

		// Back-date so the whole ride lands inside the last hour.
		timestamp := time.Now().Add(-time.Duration(len(demoRoute)-i) * time.Minute)

		tilt := float64(rand.Intn(7) - 3)
		isFall := rand.Float64() < 0.05
		if isFall {
			tilt = float64(rand.Intn(20) + 50)
			event := &models.Event{
				VehicleID: *vehicleID,
				Type:      models.EventTypeTilt,
				Value:     tilt,
				Message:   fmt.Sprintf("Caída detectada (%.0f°)", tilt),
				Timestamp: timestamp,
			}
			if err := telemetryRepo.InsertEvent(ctx, event); err != nil {
				log.Printf("Failed to record tilt event: %v", err)
			} else {
				log.Printf("Step %d: fall detected (%.0f°)", i, tilt)
			}
		}

		isLockEvent := rand.Float64() < 0.05
		if isLockEvent {
			locked = !locked
			message := "Motor DESBLOQUEADO"
			if locked {
				message = "Motor BLOQUEADO remotamente"
			}
			event := &models.Event{
				VehicleID: *vehicleID,
				Type:      models.EventTypeLock,
				On:        locked,
				Message:   message,
				Timestamp: timestamp,
			}
			if err := telemetryRepo.InsertEvent(ctx, event); err != nil {
				log.Printf("Failed to record lock event: %v", err)
			} else {
				log.Printf("Step %d: %s", i, message)
			}
		}

		location := &models.GeoPoint{Lat: lat, Lng: lng}
		if err := vehicleRepo.Update(ctx, *vehicleID, map[string]interface{}{
			"battery":   battery,
			"speed":     speed,
			"tilt":      tilt,
			"locked":    locked,
			"location":  location,
			"timestamp": timestamp,
		}); err != nil {
			log.Fatalf("Failed to update device: %v", err)
		}

		if err := telemetryRepo.InsertPing(ctx, &models.Ping{
			VehicleID: *vehicleID,
			Battery:   battery,
			Speed:     speed,
			Tilt:      tilt,
			Locked:    locked,
			Location:  location,
			Timestamp: timestamp,
		}); err != nil {
			log.Printf("Failed to record ping: %v", err)
		}

		// Sample every third step into the route history, plus the ends
		// and any step with an event.
		if i == 0 || i == len(demoRoute)-1 || i%3 == 0 || isFall || isLockEvent {
			name := "En ruta..."
			if isFall {
				name = "Caída registrada"
			} else if isLockEvent {
				if locked {
					name = "Bloqueo"
				} else {
					name = "Desbloqueo"
				}
			}
			routePoints = append(routePoints, models.RoutePoint{
				Name:     name,
				Duration: "1 min",
				Lat:      lat,
				Lng:      lng,
			})
		}

		time.Sleep(*delay)
	}

	day := &models.HistoryDay{
		VehicleID: *vehicleID,
		Day:       utils.DayID(time.Now()),
		Summary: models.HistorySummary{
			Title:    "Demo route",
			Distance: fmt.Sprintf("%.1f km", distance/1000),
			MaxSpeed: maxSpeed,
		},
		RoutePoints: routePoints,
	}
	if err := telemetryRepo.UpsertHistoryDay(ctx, day); err != nil {
		log.Fatalf("Failed to save history day: %v", err)
	}

	log.Printf("Demo complete: %.1f km, max %.0f km/h, %d route points", distance/1000, maxSpeed, len(routePoints))
}
