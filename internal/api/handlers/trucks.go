package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleet-allocation-service/internal/services"
)

// CapacityHandler exposes the per-truck, per-date load snapshot.
type CapacityHandler struct {
	Capacity *services.CapacityService
}

func (h *CapacityHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	truckID, err := strconv.Atoi(r.URL.Query().Get("truck_id"))
	if err != nil || truckID <= 0 {
		writeError(w, r, http.StatusBadRequest, "truck_id must be a positive integer")
		return
	}

	date, err := parseDay(strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	snap, err := h.Capacity.Snapshot(r.Context(), truckID, date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, capacityResponse(snap))
}
