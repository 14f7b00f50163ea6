package ports

import (
	"context"

	"fleet-allocation-service/internal/domain"
)

// Port: a boundary for truck reference data.
type TruckRepository interface {
	// GetTruck returns the truck or domain.ErrTruckNotFound.
	GetTruck(ctx context.Context, truckID int) (*domain.Truck, error)
	// ListActiveTrucks returns all active trucks ordered by display code.
	ListActiveTrucks(ctx context.Context) ([]*domain.Truck, error)
}
