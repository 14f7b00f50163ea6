package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

// ReservationService is the on-truck stock ledger. Every mutation goes
// through the repository's atomic conditional updates, so concurrent
// reservations can never double-book the same stock.
type ReservationService struct {
	Inventory ports.InventoryRepository
}

func NewReservationService(inventory ports.InventoryRepository) *ReservationService {
	return &ReservationService{Inventory: inventory}
}

// Reserve places a hold of qty units of the product on the truck for the
// order. The inventory row is created lazily on first use; a shortfall fails
// with the available quantity named and leaves the row untouched.
func (s *ReservationService) Reserve(ctx context.Context, truckID, productID, qty, orderID int) (_ *domain.TruckInventory, err error) {
	defer obs.Time(ctx, "reservation.Reserve")(&err)

	if qty <= 0 {
		return nil, fmt.Errorf("%w: reserve quantity must be positive, got %d", domain.ErrInvalidRequest, qty)
	}

	if _, err := s.Inventory.EnsureInventory(ctx, truckID, productID); err != nil {
		return nil, fmt.Errorf("reserve: ensure inventory truck=%d product=%d: %w", truckID, productID, err)
	}

	inv, err := s.Inventory.Reserve(ctx, truckID, productID, qty)
	if err != nil {
		return nil, fmt.Errorf("reserve: truck=%d product=%d order=%d: %w", truckID, productID, orderID, err)
	}

	log.Printf(
		"op=reservation.Reserve truck_id=%d product_id=%d order_id=%d qty=%d reserved=%d",
		truckID, productID, orderID, qty, inv.QtyReserved,
	)
	return inv, nil
}

// Release returns qty previously reserved units to the available pool. You
// cannot release what was never reserved: a missing row is a not-found error
// and releasing beyond the reserved quantity fails without mutating state.
func (s *ReservationService) Release(ctx context.Context, truckID, productID, qty, orderID int) (_ *domain.TruckInventory, err error) {
	defer obs.Time(ctx, "reservation.Release")(&err)

	if qty <= 0 {
		return nil, fmt.Errorf("%w: release quantity must be positive, got %d", domain.ErrInvalidRequest, qty)
	}

	inv, err := s.Inventory.Release(ctx, truckID, productID, qty)
	if err != nil {
		return nil, fmt.Errorf("release: truck=%d product=%d order=%d: %w", truckID, productID, orderID, err)
	}

	log.Printf(
		"op=reservation.Release truck_id=%d product_id=%d order_id=%d qty=%d reserved=%d",
		truckID, productID, orderID, qty, inv.QtyReserved,
	)
	return inv, nil
}

// Availability is the read-only stock picture for caller display.
type Availability struct {
	Available   bool
	QtyFull     int
	QtyReserved int
}

// CheckAvailability reports whether qty units could be reserved right now.
// A row that does not exist yet reads as zero stock, not as an error.
func (s *ReservationService) CheckAvailability(ctx context.Context, truckID, productID, qty int) (Availability, error) {
	inv, err := s.Inventory.GetInventory(ctx, truckID, productID)
	if errors.Is(err, domain.ErrNotFound) {
		return Availability{}, nil
	}
	if err != nil {
		return Availability{}, fmt.Errorf("check availability: truck=%d product=%d: %w", truckID, productID, err)
	}

	return Availability{
		Available:   inv.Available() >= qty,
		QtyFull:     inv.QtyFull,
		QtyReserved: inv.QtyReserved,
	}, nil
}
