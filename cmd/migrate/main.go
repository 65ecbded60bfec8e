package main

import (
	"log"

	"rnd-intake-be/internal/config"
	"rnd-intake-be/internal/model"
	"rnd-intake-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. AutoMigrate All Models
	models := model.All()
	log.Printf("Step 1: Running AutoMigrate for %d Tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-Migration: indexes GORM tags cannot express and legacy data fixes
	log.Println("Step 2: Creating indexes and normalizing legacy stages...")

	postMigrationSQL := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_request_rd_groups_request_group ON request_rd_groups (request_id, rd_group_id);`,

		// COMPLETE was renamed to RELEASE.
		`UPDATE requests SET current_stage = 'RELEASE' WHERE current_stage = 'COMPLETE';`,
		`UPDATE stage_histories SET stage = 'RELEASE' WHERE stage = 'COMPLETE';`,
		`UPDATE request_stage_target_histories SET stage = 'RELEASE' WHERE stage = 'COMPLETE';`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed successfully via GORM.")
}
