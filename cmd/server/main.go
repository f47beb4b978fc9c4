package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/paypulse/backend/internal/config"
	"github.com/paypulse/backend/internal/delivery/http"
	"github.com/paypulse/backend/internal/geo"
	"github.com/paypulse/backend/internal/metrics"
	"github.com/paypulse/backend/internal/repository/postgres"
	"github.com/paypulse/backend/internal/service"
	"github.com/paypulse/backend/internal/session"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Could not configure database pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	// Boundary geometry, fetched once and reused for the life of the process
	boundary, err := geo.NewLoader(cfg.BoundaryPath, cfg.BoundaryURL).Load(ctx)
	if err != nil {
		log.Fatalf("Could not load boundary geometry: %v", err)
	}
	metrics.BoundaryRegions.Set(float64(len(boundary.Features)))
	log.Printf("Loaded boundary geometry (%d regions)", len(boundary.Features))

	// Session store: Redis when configured, in-memory otherwise
	var sessions session.Store
	if client := session.OpenClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB); client != nil {
		defer client.Close()
		sessions = session.NewRedisStore(client)
		log.Println("Using Redis session store")
	} else {
		sessions = session.NewMemoryStore()
		log.Println("REDIS_ADDR not set, using in-memory session store")
	}

	// Dependency Injection
	repo := postgres.NewPostgresRepository(pool)
	pulseSvc := service.NewPulseService(repo, boundary, sessions)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "PayPulse API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, pulseSvc)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}
