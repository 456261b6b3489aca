package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ridersafe/internal/config"
	handlers "ridersafe/internal/handlers/shared"
	"ridersafe/internal/middleware"
	mongoRepos "ridersafe/internal/repositories/mongodb"
	"ridersafe/internal/services"
	"ridersafe/pkg/cache"
	"ridersafe/pkg/database"
	"ridersafe/pkg/email"
	"ridersafe/pkg/logger"
	"ridersafe/pkg/maps"
	"ridersafe/pkg/payment"
	"ridersafe/pkg/push"
	"ridersafe/pkg/websocket"
	"ridersafe/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	auditLogger, err := logger.NewAuditLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		IdleTimeout:  cfg.Redis.IdleTimeout,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	emailSender, err := email.NewSender(&email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.FromEmail,
		TLS:      cfg.SMTP.TLS,
	}, appLogger)
	if err != nil {
		appLogger.Warnf("Email delivery disabled: %v", err)
		emailSender = nil
	}

	var pushProvider push.PushProvider
	if cfg.Push.Enabled {
		provider, err := push.NewFCMProvider(cfg.Push.FCM.Credentials)
		if err != nil {
			appLogger.Warnf("Push notifications disabled: %v", err)
		} else {
			pushProvider = provider
		}
	}

	var mapsProvider maps.MapsProvider
	if cfg.Maps.Enabled {
		provider, err := maps.NewGoogleMapsProvider(cfg.Maps.GoogleMaps.APIKey)
		if err != nil {
			appLogger.Warnf("Geocoding disabled: %v", err)
		} else {
			mapsProvider = provider
		}
	}

	paymentProvider := payment.NewStripeProvider(cfg.Payment.Stripe.SecretKey, cfg.Payment.Stripe.WebhookSecret)

	// Repositories
	userRepo := mongoRepos.NewUserRepository(db.Database, redisCache)
	vehicleRepo := mongoRepos.NewVehicleRepository(db.Database, redisCache)
	licenseRepo := mongoRepos.NewLicenseRepository(db.Database)
	reviewRepo := mongoRepos.NewReviewRepository(db.Database)
	telemetryRepo := mongoRepos.NewTelemetryRepository(db.Database)

	// Services
	cacheService := services.NewCacheService(redisCache, appLogger, "ridersafe", 15*time.Minute)
	geofenceService := services.NewGeofenceService(vehicleRepo, appLogger)
	telemetryService := services.NewTelemetryService(db, vehicleRepo, geofenceService, nil, appLogger)

	wsHandler := websocket.NewHandler(telemetryService, &websocket.Options{
		ReadBufferSize:    cfg.WebSocket.ReadBufferSize,
		WriteBufferSize:   cfg.WebSocket.WriteBufferSize,
		HandshakeTimeout:  cfg.WebSocket.HandshakeTimeout,
		PongTimeout:       cfg.WebSocket.PongTimeout,
		MaxConnections:    cfg.WebSocket.MaxConnections,
		EnableCompression: cfg.WebSocket.EnableCompression,
		AllowedOrigins:    cfg.WebSocket.AllowedOrigins,
	})

	// The notifier pushes through the websocket handler, which already
	// holds the session factory, so it is attached after construction.
	notificationService := services.NewNotificationService(userRepo, pushProvider, wsHandler, appLogger)
	telemetryService.SetNotifier(notificationService)

	authService := services.NewAuthService(userRepo, cacheService, emailSender, cfg.App, cfg.Security, appLogger, auditLogger)
	licenseService := services.NewLicenseService(db, licenseRepo, userRepo, vehicleRepo, paymentProvider, emailSender, cfg.Payment, appLogger, auditLogger)
	vehicleService := services.NewVehicleService(vehicleRepo, telemetryRepo, mapsProvider, appLogger)
	analyticsService := services.NewAnalyticsService(telemetryRepo, vehicleRepo, appLogger)
	reviewService := services.NewReviewService(reviewRepo, userRepo, appLogger)
	contactService := services.NewContactService(emailSender, cfg.SMTP, appLogger)

	h := &routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Vehicle:   handlers.NewVehicleHandler(vehicleService),
		Geofence:  handlers.NewGeofenceHandler(geofenceService, vehicleService),
		License:   handlers.NewLicenseHandler(licenseService),
		Review:    handlers.NewReviewHandler(reviewService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService, vehicleService),
		Contact:   handlers.NewContactHandler(contactService),
		Payment:   handlers.NewPaymentHandler(licenseService, appLogger),
		WebSocket: wsHandler,
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.Fatalf("Invalid trusted proxies: %v", err)
		}
	}

	routes.Setup(router, h, cfg.Security.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"mongodb": "ok", "redis": "ok"}
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			checks["mongodb"] = err.Error()
		}
		c.JSON(status, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
			"checks":  checks,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}
