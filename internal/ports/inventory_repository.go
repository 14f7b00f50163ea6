package ports

import (
	"context"

	"fleet-allocation-service/internal/domain"
)

// Port: the atomic stock ledger for per-(truck, product) inventory rows.
//
// Reserve and Release are conditional updates that check and mutate in one
// step: concurrent callers must never drive qty_reserved above qty_full or
// below zero, whatever interleaving occurs.
type InventoryRepository interface {
	// GetInventory returns the row or domain.ErrInventoryNotFound.
	GetInventory(ctx context.Context, truckID, productID int) (*domain.TruckInventory, error)
	// EnsureInventory returns the row, creating an all-zero row if absent.
	EnsureInventory(ctx context.Context, truckID, productID int) (*domain.TruckInventory, error)
	// Reserve atomically increments qty_reserved by qty when at least qty
	// units are available, returning the updated row. A shortfall yields
	// domain.InsufficientStockError and leaves the row untouched; a missing
	// row yields domain.ErrInventoryNotFound.
	Reserve(ctx context.Context, truckID, productID, qty int) (*domain.TruckInventory, error)
	// Release atomically decrements qty_reserved by qty when at least qty
	// units are reserved, returning the updated row. Releasing more than is
	// reserved yields domain.ReleaseExceedsReservedError; a missing row
	// yields domain.ErrInventoryNotFound.
	Release(ctx context.Context, truckID, productID, qty int) (*domain.TruckInventory, error)
}
