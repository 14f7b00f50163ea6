package dto

import "time"

type AllocateRequest struct {
	OrderID   int    `json:"order_id"`
	TruckID   *int   `json:"truck_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Force     bool   `json:"force"`
	CreatedBy string `json:"created_by"`
}

type AllocationResponse struct {
	AllocationID      int       `json:"allocation_id"`
	TruckID           int       `json:"truck_id"`
	OrderID           int       `json:"order_id"`
	Date              string    `json:"date"`
	EstimatedWeightKg float64   `json:"estimated_weight_kg"`
	Status            string    `json:"status"`
	StopSequence      *int      `json:"stop_sequence"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

type RankRequest struct {
	OrderID  int      `json:"order_id"`
	WeightKg *float64 `json:"weight_kg"` // optional precomputed weight
	Date     string   `json:"date"`
}

type TruckScoreResponse struct {
	TruckID  int              `json:"truck_id"`
	Code     string           `json:"code"`
	Score    int              `json:"score"`
	Reasons  []string         `json:"reasons"`
	Capacity CapacityResponse `json:"capacity"`
}

type RankResponse struct {
	OrderWeightKg float64              `json:"order_weight_kg"`
	Trucks        []TruckScoreResponse `json:"trucks"`
}
