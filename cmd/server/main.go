// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"apexscore/internal/config"
	"apexscore/internal/logger"
	"apexscore/internal/repositories"
	"apexscore/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
)

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Initializes database connections
// - Configures routes
// - Starts the HTTP server
func main() {
	// Load environment variables
	config.LoadEnv()

	zlog := logger.New(config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("LOG_FORMAT", "json"))
	defer zlog.Sync() //nolint:errcheck

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	maxIdleConns, _ := strconv.Atoi(config.GetEnv("DB_MAX_IDLE_CONNS", "10"))
	maxOpenConns, _ := strconv.Atoi(config.GetEnv("DB_MAX_OPEN_CONNS", "100"))
	connMaxLifetime := config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour)
	connMaxIdleTime := config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute)

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("✅ Successfully connected to database with connection pooling")

	// Clear cached applicants and settings on startup
	if repositories.CacheService != nil {
		if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
			log.Printf("⚠️ Failed to flush Redis cache: %v", err)
		} else {
			log.Println("✅ Redis cache flushed on startup")
		}
	}

	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Printf("⚠️ Failed to close database connection: %v", err)
				}
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	// Create Fiber app
	app := fiber.New()

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	// Access log middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Brute-force protection on the public auth endpoints
	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(429).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	// Routes
	routes.SetupRoutes(app, repositories.DB, zlog)

	// Start server
	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
