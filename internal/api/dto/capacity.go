package dto

type CapacityResponse struct {
	TruckID             int     `json:"truck_id"`
	TruckCode           string  `json:"truck_code"`
	Date                string  `json:"date"`
	TotalCapacityKg     float64 `json:"total_capacity_kg"`
	AllocatedWeightKg   float64 `json:"allocated_weight_kg"`
	AvailableCapacityKg float64 `json:"available_capacity_kg"`
	UtilizationPercent  float64 `json:"utilization_percent"`
	ActiveOrderCount    int     `json:"active_order_count"`
	IsOverallocated     bool    `json:"is_overallocated"`
}
