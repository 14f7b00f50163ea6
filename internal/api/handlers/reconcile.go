package handlers

import (
	"net/http"

	"fleet-allocation-service/internal/api/dto"
	"fleet-allocation-service/internal/services"
)

// ReconcileHandler triggers a drift-repair pass over order assignment fields.
type ReconcileHandler struct {
	Reconciler *services.Reconciler
}

func (h *ReconcileHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := h.Reconciler.Run(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ReconcileResponse{
		Checked:  report.Checked,
		Repaired: report.Repaired,
		Cleared:  report.Cleared,
	})
}
