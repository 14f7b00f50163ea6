package handlers

import (
	"context"
	"net/http"
	"strconv"

	"fleet-allocation-service/internal/api/dto"
	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/services"
)

// InventoryHandler exposes the on-truck stock reservation ledger.
type InventoryHandler struct {
	Reservations *services.ReservationService
}

func (h *InventoryHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.Reservations.Reserve)
}

func (h *InventoryHandler) Release(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.Reservations.Release)
}

// Availability reports whether qty units could be reserved right now, along
// with the raw quantities for display.
func (h *InventoryHandler) Availability(w http.ResponseWriter, r *http.Request) {
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
	productID, err := strconv.Atoi(r.URL.Query().Get("product_id"))
	if err != nil || productID <= 0 {
		writeError(w, r, http.StatusBadRequest, "product_id must be a positive integer")
		return
	}
	qty, err := strconv.Atoi(r.URL.Query().Get("qty"))
	if err != nil || qty <= 0 {
		writeError(w, r, http.StatusBadRequest, "qty must be a positive integer")
		return
	}

	avail, err := h.Reservations.CheckAvailability(r.Context(), truckID, productID, qty)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AvailabilityResponse{
		Available:   avail.Available,
		QtyFull:     avail.QtyFull,
		QtyReserved: avail.QtyReserved,
	})
}

// mutate handles the shared body parsing and response shape of Reserve and
// Release, which differ only in the ledger operation applied.
func (h *InventoryHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, truckID, productID, qty, orderID int) (*domain.TruckInventory, error),
) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ReservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.TruckID <= 0 || req.ProductID <= 0 {
		writeError(w, r, http.StatusBadRequest, "truck_id and product_id are required")
		return
	}
	if req.Qty <= 0 {
		writeError(w, r, http.StatusBadRequest, "qty must be a positive integer")
		return
	}

	inv, err := op(r.Context(), req.TruckID, req.ProductID, req.Qty, req.OrderID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.InventoryResponse{
		TruckID:      inv.TruckID,
		ProductID:    inv.ProductID,
		QtyFull:      inv.QtyFull,
		QtyEmpty:     inv.QtyEmpty,
		QtyReserved:  inv.QtyReserved,
		QtyAvailable: inv.Available(),
	})
}
