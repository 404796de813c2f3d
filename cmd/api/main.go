package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gentleman654/VoxLens/internal/config"
	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/handlers"
	"github.com/gentleman654/VoxLens/internal/middleware"
	"github.com/gentleman654/VoxLens/internal/telemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

const serviceName = "voxlens-api"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize OpenTelemetry Tracer
	ctx := context.Background()
	tracerShutdown, err := telemetry.InitTracer(ctx, serviceName, cfg.SigNozEndpoint)
	if err != nil {
		log.Printf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// Initialize OpenTelemetry Metrics
	meterShutdown, err := telemetry.InitMeter(ctx, serviceName, cfg.SigNozEndpoint)
	if err != nil {
		log.Printf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Error shutting down metrics: %v", err)
		}
	}()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Collect connection pool metrics in the background
	poolCtx, poolCancel := context.WithCancel(ctx)
	defer poolCancel()
	go database.StartConnectionPoolMetricsCollector(poolCtx, db.DB, 15*time.Second)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "VoxLens API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		TimeZone:   "UTC",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: serviceName,
	}))
	app.Use(middleware.PrometheusMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:  "Accept, Accept-Encoding, Authorization, Content-Type, Origin, User-Agent, X-Requested-With, X-API-Key",
		ExposeHeaders: "Content-Length, Content-Type",
		MaxAge:        86400,
	}))

	// Setup routes
	setupRoutes(app, db, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, db *database.DB, cfg *config.Config) {
	// Health check endpoints for k8s probes
	app.Get("/healthz", handlers.HealthCheck)

	// Prometheus scrape endpoint, internal network only
	app.Get("/metrics", middleware.InternalOnly(), middleware.PrometheusHandler())

	// API v1 group
	v1 := app.Group("/api/v1")
	v1.Get("/readiness", handlers.ReadinessCheck(db))
	v1.Get("/liveness", handlers.LivenessCheck)

	// Auth routes (no auth required)
	auth := v1.Group("/auth")
	handlers.SetupAuthRoutes(auth, db, cfg)

	// Users routes (auth required)
	users := v1.Group("/users", middleware.AuthRequired(cfg))
	handlers.SetupUserRoutes(users, db)

	// Searches and saved searches (auth required)
	searches := v1.Group("/searches", middleware.AuthRequired(cfg))
	handlers.SetupSearchRoutes(searches, db)

	// Reports (auth required)
	reports := v1.Group("/reports", middleware.AuthRequired(cfg))
	handlers.SetupReportRoutes(reports, db)

	// Internal worker callback (API key required)
	internal := v1.Group("/internal")
	handlers.SetupInternalRoutes(internal, db, cfg)
}
