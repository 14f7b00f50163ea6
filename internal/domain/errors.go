package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. Callers use errors.Is against
// ErrNotFound / ErrInvalidRequest to decide client-facing handling; anything
// not wrapping one of these is treated as a storage fault.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// NotFound kinds.
var (
	ErrTruckNotFound      = fmt.Errorf("truck %w", ErrNotFound)
	ErrOrderNotFound      = fmt.Errorf("order %w", ErrNotFound)
	ErrVariantNotFound    = fmt.Errorf("product variant %w", ErrNotFound)
	ErrAllocationNotFound = fmt.Errorf("allocation %w", ErrNotFound)
	ErrInventoryNotFound  = fmt.Errorf("truck inventory row %w", ErrNotFound)
)

// InvalidRequest kinds. These are terminal client errors, never retried.
var (
	ErrNoSuitableTruck = fmt.Errorf("%w: no truck scores positively", ErrInvalidRequest)
)

// InsufficientCapacityError rejects an allocation whose order weight exceeds
// the chosen truck's available capacity (unless forced).
type InsufficientCapacityError struct {
	TruckID     int
	AvailableKg float64
	RequiredKg  float64
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf(
		"truck %d has %.2f kg available, order needs %.2f kg",
		e.TruckID, e.AvailableKg, e.RequiredKg,
	)
}

func (e *InsufficientCapacityError) Unwrap() error { return ErrInvalidRequest }

// InsufficientStockError rejects a reservation exceeding the available
// (full minus reserved) quantity on a truck.
type InsufficientStockError struct {
	TruckID   int
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"truck %d product %d: requested %d, only %d available (short %d)",
		e.TruckID, e.ProductID, e.Requested, e.Available, e.Requested-e.Available,
	)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInvalidRequest }

// ReleaseExceedsReservedError rejects releasing more than is currently reserved.
type ReleaseExceedsReservedError struct {
	TruckID   int
	ProductID int
	Requested int
	Reserved  int
}

func (e *ReleaseExceedsReservedError) Error() string {
	return fmt.Sprintf(
		"truck %d product %d: cannot release %d, only %d reserved",
		e.TruckID, e.ProductID, e.Requested, e.Reserved,
	)
}

func (e *ReleaseExceedsReservedError) Unwrap() error { return ErrInvalidRequest }
