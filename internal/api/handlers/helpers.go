package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"fleet-allocation-service/internal/api/dto"
	"fleet-allocation-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: NotFound→404,
// InvalidRequest→422, anything else is a storage fault reported as 500 with
// the detail kept in the server log.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// parseDay parses a YYYY-MM-DD value in UTC.
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func formatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

func capacityResponse(snap domain.CapacitySnapshot) dto.CapacityResponse {
	return dto.CapacityResponse{
		TruckID:             snap.TruckID,
		TruckCode:           snap.TruckCode,
		Date:                formatDay(snap.Date),
		TotalCapacityKg:     snap.TotalCapacityKg,
		AllocatedWeightKg:   snap.AllocatedWeightKg,
		AvailableCapacityKg: snap.AvailableCapacityKg,
		UtilizationPercent:  snap.UtilizationPercent,
		ActiveOrderCount:    snap.ActiveOrderCount,
		IsOverallocated:     snap.IsOverallocated,
	}
}

func allocationResponse(a *domain.TruckAllocation) dto.AllocationResponse {
	return dto.AllocationResponse{
		AllocationID:      a.AllocationID,
		TruckID:           a.TruckID,
		OrderID:           a.OrderID,
		Date:              formatDay(a.Date),
		EstimatedWeightKg: a.EstimatedWeightKg,
		Status:            string(a.Status),
		StopSequence:      a.StopSequence,
		CreatedBy:         a.CreatedBy,
		CreatedAt:         a.CreatedAt,
	}
}
