package dto

type ReservationRequest struct {
	TruckID   int `json:"truck_id"`
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
	OrderID   int `json:"order_id"`
}

type InventoryResponse struct {
	TruckID      int `json:"truck_id"`
	ProductID    int `json:"product_id"`
	QtyFull      int `json:"qty_full"`
	QtyEmpty     int `json:"qty_empty"`
	QtyReserved  int `json:"qty_reserved"`
	QtyAvailable int `json:"qty_available"`
}

type AvailabilityResponse struct {
	Available   bool `json:"available"`
	QtyFull     int  `json:"qty_full"`
	QtyReserved int  `json:"qty_reserved"`
}

type ReconcileResponse struct {
	Checked  int `json:"checked"`
	Repaired int `json:"repaired"`
	Cleared  int `json:"cleared"`
}
