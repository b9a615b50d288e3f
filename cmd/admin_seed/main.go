// Command admin_seed bootstraps the first admin operator account and the
// default risk settings row. Run once against a fresh database.
package main

import (
	"context"
	"log"
	"os"

	"apexscore/internal/config"
	"apexscore/internal/models"
	"apexscore/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminName := os.Getenv("ADMIN_NAME")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}
	if adminName == "" {
		adminName = "Administrator"
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err != nil {
				log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			} else if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
			}
		}

		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	var existingAdmin models.User
	result := repositories.DB.Where("email = ?", adminEmail).First(&existingAdmin)
	if result.Error == nil {
		log.Println("Admin user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	adminUser := models.User{
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Name:         adminName,
		Role:         "admin",
		Status:       "active",
		TokenVersion: 1,
	}

	if err := repositories.DB.Create(&adminUser).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	// Seed the default risk settings row so the dashboard never boots on an
	// empty policy table.
	settingsRepo := repositories.NewSettingsRepository(repositories.DB)
	if _, err := settingsRepo.Get(context.Background()); err != nil {
		payload, err := models.AsJSON(models.DefaultRiskSettings())
		if err != nil {
			log.Fatal("Failed to encode default settings:", err)
		}
		record := &models.RiskSettingsRecord{
			Key:       models.RiskSettingsKey,
			Payload:   payload,
			UpdatedBy: adminUser.ID,
		}
		if err := settingsRepo.Save(context.Background(), record); err != nil {
			log.Fatal("Failed to seed risk settings:", err)
		}
		log.Println("✅ Default risk settings seeded")
	}

	log.Println("✅ Admin account created successfully!")
}
