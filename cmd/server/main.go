package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"fleet-allocation-service/internal/adapters/events"
	"fleet-allocation-service/internal/adapters/repositories"
	"fleet-allocation-service/internal/api"
	"fleet-allocation-service/internal/config"
	"fleet-allocation-service/internal/platform/db"
	"fleet-allocation-service/internal/services"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete Postgres adapters behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	port := config.Get("PORT", "8080")

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal(err)
	}

	// Seeding on startup is for local runs; live data comes from the
	// back-office import jobs.
	if seedPath := os.Getenv("SEED_PATH"); strings.TrimSpace(seedPath) != "" {
		if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	truckRepo := repositories.NewSQLTruckRepository(conn)
	orderRepo := repositories.NewSQLOrderRepository(conn)
	productRepo := repositories.NewSQLProductRepository(conn)
	allocationRepo := repositories.NewSQLAllocationRepository(conn)
	inventoryRepo := repositories.NewSQLInventoryRepository(conn)
	fallbackRecorder := events.NewSQLFallbackRecorder(conn)

	weight := services.NewWeightService(orderRepo, productRepo, fallbackRecorder)
	capacity := services.NewCapacityService(truckRepo, allocationRepo)
	scorer := services.NewScoreService(truckRepo, capacity)
	allocations := services.NewAllocationService(orderRepo, truckRepo, allocationRepo, weight, scorer, capacity)
	schedule := services.NewScheduleService(truckRepo, orderRepo, allocationRepo, capacity)
	reservations := services.NewReservationService(inventoryRepo)
	reconciler := services.NewReconciler(orderRepo, allocationRepo)

	router := api.NewRouter(api.Deps{
		Weight:       weight,
		Capacity:     capacity,
		Scorer:       scorer,
		Allocations:  allocations,
		Schedule:     schedule,
		Reservations: reservations,
		Reconciler:   reconciler,
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
