package api

import (
	"net/http"

	"fleet-allocation-service/internal/api/handlers"
	"fleet-allocation-service/internal/services"
)

// Deps collects the services the HTTP surface exposes.
type Deps struct {
	Weight       *services.WeightService
	Capacity     *services.CapacityService
	Scorer       *services.ScoreService
	Allocations  *services.AllocationService
	Schedule     *services.ScheduleService
	Reservations *services.ReservationService
	Reconciler   *services.Reconciler
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	capacityHandler := &handlers.CapacityHandler{Capacity: deps.Capacity}
	allocationHandler := &handlers.AllocationHandler{
		Allocations: deps.Allocations,
		Scorer:      deps.Scorer,
		Weight:      deps.Weight,
	}
	scheduleHandler := &handlers.ScheduleHandler{Schedule: deps.Schedule}
	inventoryHandler := &handlers.InventoryHandler{Reservations: deps.Reservations}
	reconcileHandler := &handlers.ReconcileHandler{Reconciler: deps.Reconciler}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trucks/capacity", capacityHandler.Snapshot)
	mux.HandleFunc("/allocations", allocationsDispatch(allocationHandler))
	mux.HandleFunc("/allocations/rank", allocationHandler.Rank)
	mux.HandleFunc("/schedule", scheduleHandler.Day)
	mux.HandleFunc("/inventory/reserve", inventoryHandler.Reserve)
	mux.HandleFunc("/inventory/release", inventoryHandler.Release)
	mux.HandleFunc("/inventory/availability", inventoryHandler.Availability)
	mux.HandleFunc("/reconcile", reconcileHandler.Run)

	return loggingMiddleware(mux)
}

// allocationsDispatch routes POST to create and DELETE to remove on the
// shared /allocations path.
func allocationsDispatch(h *handlers.AllocationHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Create(w, r)
		case http.MethodDelete:
			h.Remove(w, r)
		default:
			w.Header().Set("Allow", "POST, DELETE")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = w.Write([]byte(`{"error":"method not allowed"}` + "\n"))
		}
	}
}
