package dto

type ScheduleStopResponse struct {
	AllocationID      int     `json:"allocation_id"`
	OrderID           int     `json:"order_id"`
	CustomerName      string  `json:"customer_name"`
	DeliveryAddress   string  `json:"delivery_address"`
	TotalAmount       string  `json:"total_amount"`
	EstimatedWeightKg float64 `json:"estimated_weight_kg"`
	Status            string  `json:"status"`
	StopSequence      *int    `json:"stop_sequence"`
}

type ScheduleEntryResponse struct {
	TruckID         int                    `json:"truck_id"`
	TruckCode       string                 `json:"truck_code"`
	Capacity        CapacityResponse       `json:"capacity"`
	Stops           []ScheduleStopResponse `json:"stops"`
	AllocationCount int                    `json:"allocation_count"`
	RouteStatus     string                 `json:"route_status"`
}

type ScheduleResponse struct {
	Date    string                  `json:"date"`
	Entries []ScheduleEntryResponse `json:"entries"`
}
