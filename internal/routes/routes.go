// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"context"
	"log"
	"time"

	"apexscore/internal/config"
	"apexscore/internal/handlers"
	"apexscore/internal/middleware"
	"apexscore/internal/models"
	"apexscore/internal/repositories"
	"apexscore/internal/services/apexapi"
	"apexscore/internal/services/auth"
	"apexscore/internal/services/dashboard"
	"apexscore/internal/services/history"
	"apexscore/internal/services/openbanking"
	"apexscore/internal/services/risk"
	"apexscore/internal/services/settings"
	"apexscore/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB, zlog *zap.Logger) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	historyRepo := repositories.NewHistoryRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	openBankingRepo := repositories.NewOpenBankingRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	apexClient := apexapi.NewClient(apexapi.Config{
		BaseURL:  config.GetEnv("APEX_API_BASE_URL", "http://localhost:8080"),
		Timeout:  config.GetDurationEnv("APEX_API_TIMEOUT", 10*time.Second),
		CacheTTL: config.GetDurationEnv("APEX_API_CACHE_TTL", 15*time.Minute),
	}, repositories.CacheService, zlog)
	riskService := risk.NewService()
	settingsService := settings.NewService(settingsRepo, repositories.CacheService, zlog)
	historyService := history.NewService(historyRepo, zlog)
	dashboardService := dashboard.NewService(apexClient, historyService, zlog)
	openBankingService := openbanking.NewService(openBankingRepo, zlog)

	if err := openBankingService.EnsureDefaultPolicies(context.Background()); err != nil {
		log.Printf("Failed to seed institution policies: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	applicantHandler := handlers.NewApplicantHandler(apexClient, historyService, zlog)
	riskHandler := handlers.NewRiskHandler(apexClient, riskService, settingsService, zlog)
	historyHandler := handlers.NewHistoryHandler(historyService, zlog)
	settingsHandler := handlers.NewSettingsHandler(settingsService, zlog)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, zlog)
	openBankingHandler := handlers.NewOpenBankingHandler(openBankingService, zlog)

	// Public endpoints
	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Post("/login", authHandler.Login)
	api.Post("/register", userHandler.Register)
	api.Post("/refresh", authHandler.RefreshToken)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	// Account
	protected.Get("/me", userHandler.GetProfile)
	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password",
		middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)

	// Applicants and risk analysis
	protected.Get("/search",
		middleware.HasPermission(models.PermissionApplicantRead), applicantHandler.Search)
	protected.Get("/applicants",
		middleware.HasPermission(models.PermissionApplicantRead), applicantHandler.List)
	protected.Get("/applicants/:id",
		middleware.HasPermission(models.PermissionApplicantRead), applicantHandler.Get)
	protected.Get("/applicants/:id/breakdown",
		middleware.HasPermission(models.PermissionApplicantRead), riskHandler.Breakdown)
	protected.Get("/applicants/:id/recommendation",
		middleware.HasPermission(models.PermissionApplicantRead), riskHandler.Recommendation)

	// Search history
	protected.Get("/history",
		middleware.HasPermission(models.PermissionHistoryRead), historyHandler.List)
	protected.Delete("/history",
		middleware.HasPermission(models.PermissionHistoryWrite), historyHandler.Clear)

	// Dashboard
	protected.Get("/dashboard/stats", dashboardHandler.Stats)

	// Risk settings
	protected.Get("/settings",
		middleware.HasPermission(models.PermissionSettingsRead), settingsHandler.Get)
	protected.Put("/settings",
		middleware.AdminAuthMiddleware, settingsHandler.Update)

	// Open banking
	openBankingRoutes := protected.Group("/openbanking")
	openBankingRoutes.Get("/policies", openBankingHandler.ListPolicies)
	openBankingRoutes.Get("/requests", openBankingHandler.ListRequests)
	openBankingRoutes.Post("/requests", openBankingHandler.CreateRequest)
	openBankingRoutes.Patch("/requests/:id", openBankingHandler.UpdateRequestStatus)
}
