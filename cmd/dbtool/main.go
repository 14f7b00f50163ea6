package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	"fleet-allocation-service/internal/adapters/repositories"
	"fleet-allocation-service/internal/config"
	"fleet-allocation-service/internal/platform/db"
	"fleet-allocation-service/internal/services"

	"github.com/joho/godotenv"
)

// dbtool initializes the schema, seeds fleet data, and optionally runs an
// assignment reconciliation pass (RECONCILE=1).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/fleet.json")
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}

	if config.Get("RECONCILE", "") == "1" {
		reconciler := services.NewReconciler(
			repositories.NewSQLOrderRepository(conn),
			repositories.NewSQLAllocationRepository(conn),
		)
		report, err := reconciler.Run(context.Background())
		if err != nil {
			log.Fatalf("reconciliation failed: %v", err)
		}
		log.Printf("Reconciliation done checked=%d repaired=%d cleared=%d",
			report.Checked, report.Repaired, report.Cleared)
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
