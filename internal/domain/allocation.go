package domain

import "time"

// Lifecycle of a truck allocation: planned → loaded → delivered, or
// cancelled. A cancelled allocation never counts toward a truck's load.
type AllocationStatus string

const (
	AllocationPlanned   AllocationStatus = "planned"
	AllocationLoaded    AllocationStatus = "loaded"
	AllocationDelivered AllocationStatus = "delivered"
	AllocationCancelled AllocationStatus = "cancelled"
)

// TruckAllocation binds one order to one truck for one date, carrying the
// order's estimated weight at assignment time.
type TruckAllocation struct {
	AllocationID      int
	TruckID           int
	OrderID           int
	Date              time.Time
	EstimatedWeightKg float64
	Status            AllocationStatus
	StopSequence      *int
	CreatedBy         string
	CreatedAt         time.Time
}

// CountsTowardLoad reports whether this allocation contributes to the
// truck's allocated weight.
func (a *TruckAllocation) CountsTowardLoad() bool {
	return a.Status != AllocationCancelled
}

// SameDay compares two timestamps by calendar date, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
