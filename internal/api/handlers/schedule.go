package handlers

import (
	"net/http"
	"strings"

	"fleet-allocation-service/internal/api/dto"
	"fleet-allocation-service/internal/services"
)

// ScheduleHandler exposes the per-day fleet schedule board.
type ScheduleHandler struct {
	Schedule *services.ScheduleService
}

func (h *ScheduleHandler) Day(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date, err := parseDay(strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	entries, err := h.Schedule.DaySchedule(r.Context(), date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ScheduleResponse{
		Date:    formatDay(date),
		Entries: make([]dto.ScheduleEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		stops := make([]dto.ScheduleStopResponse, 0, len(e.Stops))
		for _, s := range e.Stops {
			stops = append(stops, dto.ScheduleStopResponse{
				AllocationID:      s.Allocation.AllocationID,
				OrderID:           s.Allocation.OrderID,
				CustomerName:      s.CustomerName,
				DeliveryAddress:   s.DeliveryAddress,
				TotalAmount:       s.TotalAmount.StringFixed(2),
				EstimatedWeightKg: s.Allocation.EstimatedWeightKg,
				Status:            string(s.Allocation.Status),
				StopSequence:      s.Allocation.StopSequence,
			})
		}

		res.Entries = append(res.Entries, dto.ScheduleEntryResponse{
			TruckID:         e.Truck.TruckID,
			TruckCode:       e.Truck.Code,
			Capacity:        capacityResponse(e.Capacity),
			Stops:           stops,
			AllocationCount: e.AllocationCount,
			RouteStatus:     string(e.RouteStatus),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
