package ports

import (
	"context"
	"time"

	"fleet-allocation-service/internal/domain"
)

// Port: a boundary for truck allocation rows, the source of truth for
// order-to-truck bindings.
type AllocationRepository interface {
	// GetAllocation returns the allocation or domain.ErrAllocationNotFound.
	GetAllocation(ctx context.Context, allocationID int) (*domain.TruckAllocation, error)
	// InsertAllocation persists a new allocation and returns it with its
	// generated identifier.
	InsertAllocation(ctx context.Context, alloc *domain.TruckAllocation) (*domain.TruckAllocation, error)
	// DeleteAllocation hard-deletes the allocation, or returns
	// domain.ErrAllocationNotFound.
	DeleteAllocation(ctx context.Context, allocationID int) error
	// ListActiveByTruckAndDate returns the truck's non-cancelled allocations
	// for the date, ordered by stop sequence with unsequenced rows last.
	ListActiveByTruckAndDate(ctx context.Context, truckID int, date time.Time) ([]*domain.TruckAllocation, error)
	// ListActive returns all non-cancelled allocations.
	ListActive(ctx context.Context) ([]*domain.TruckAllocation, error)
}
