package main

import (
	"log"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/database"
)

// Runs schema migrations and the count-guarded recipe seed. Meant to be
// executed at deploy time, before the API starts.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")

	if err := database.SeedRecipes(db); err != nil {
		log.Fatalf("Recipe seed failed: %v", err)
	}
}
