package domain

import "time"

// CapacitySnapshot is the computed load picture of one truck for one date.
// AvailableCapacityKg is signed and goes negative when a truck is
// overallocated; the identity available + allocated = total always holds.
type CapacitySnapshot struct {
	TruckID             int
	TruckCode           string
	Date                time.Time
	TotalCapacityKg     float64
	AllocatedWeightKg   float64
	AvailableCapacityKg float64
	UtilizationPercent  float64
	ActiveOrderCount    int
	IsOverallocated     bool
}

// TruckScore ranks one truck's suitability for a candidate order, with
// human-readable reasons for operators.
type TruckScore struct {
	Truck    *Truck
	Capacity CapacitySnapshot
	Score    int
	Reasons  []string
}
