package ports

import (
	"context"
	"time"

	"fleet-allocation-service/internal/domain"
)

// Port: a boundary for order retrieval and assignment-field updates.
// Order lines are owned by order entry; this core only writes the
// denormalized assignment fields.
type OrderRepository interface {
	// GetOrder returns the order with its lines, or domain.ErrOrderNotFound.
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	// ListAssignedOrders returns orders whose assigned-truck field is set.
	// Lines are not loaded.
	ListAssignedOrders(ctx context.Context) ([]*domain.Order, error)
	// UpdateAssignment sets (or, with nils, clears) the order's denormalized
	// truck and date assignment fields.
	UpdateAssignment(ctx context.Context, orderID int, truckID *int, date *time.Time) error
}
