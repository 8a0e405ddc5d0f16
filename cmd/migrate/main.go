package main

import (
	"log"

	"triage-assist-be/internal/config"
	"triage-assist-be/internal/model"
	"triage-assist-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{
		URL:      cfg.Database.Connection,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
		Verbose:  true,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: gen_random_uuid() lives in pgcrypto on older servers
	log.Println("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	// 4. AutoMigrate (sessions first, report files reference them)
	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.ConsentRecord{},
		&model.SymptomSession{},
		&model.ReportFile{},
		&model.LlmAuditLog{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
