package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"fleet-allocation-service/internal/api/dto"
	"fleet-allocation-service/internal/services"
)

// AllocationHandler exposes commit/remove of order-to-truck bindings and the
// truck ranking used to pick one.
type AllocationHandler struct {
	Allocations *services.AllocationService
	Scorer      *services.ScoreService
	Weight      *services.WeightService
}

// Create commits an order-to-truck binding. With no truck_id in the body the
// scorer picks the best-ranked truck; force skips the capacity check.
func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AllocateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.OrderID <= 0 {
		writeError(w, r, http.StatusBadRequest, "order_id is required")
		return
	}
	date, err := parseDay(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	alloc, err := h.Allocations.Allocate(r.Context(), services.AllocateRequest{
		OrderID:   req.OrderID,
		TruckID:   req.TruckID,
		Date:      date,
		Force:     req.Force,
		CreatedBy: strings.TrimSpace(req.CreatedBy),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, allocationResponse(alloc))
}

// Remove deletes an allocation by id and clears the order's assignment.
func (h *AllocationHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodDelete)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	if err := h.Allocations.Remove(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Rank scores every active truck for an order and returns the full ranking.
func (h *AllocationHandler) Rank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RankRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, err := parseDay(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	weightKg := 0.0
	if req.WeightKg != nil {
		weightKg = *req.WeightKg
	} else {
		if req.OrderID <= 0 {
			writeError(w, r, http.StatusBadRequest, "order_id or weight_kg is required")
			return
		}
		weightKg, err = h.Weight.OrderWeightKg(r.Context(), req.OrderID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	scores, err := h.Scorer.RankTrucks(r.Context(), weightKg, date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.RankResponse{
		OrderWeightKg: weightKg,
		Trucks:        make([]dto.TruckScoreResponse, 0, len(scores)),
	}
	for _, ts := range scores {
		res.Trucks = append(res.Trucks, dto.TruckScoreResponse{
			TruckID:  ts.Truck.TruckID,
			Code:     ts.Truck.Code,
			Score:    ts.Score,
			Reasons:  ts.Reasons,
			Capacity: capacityResponse(ts.Capacity),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// decodeBody strictly decodes a single JSON object into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
