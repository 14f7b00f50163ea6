package memory

import (
	"context"
	"sync"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/ports"
)

type inventoryKey struct {
	truckID   int
	productID int
}

// InventoryRepository is an in-memory InventoryRepository. Reserve and
// Release check and mutate under one mutex, matching the atomicity the SQL
// adapter gets from conditional updates.
type InventoryRepository struct {
	mu   sync.Mutex
	rows map[inventoryKey]*domain.TruckInventory
}

var _ ports.InventoryRepository = (*InventoryRepository)(nil)

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{rows: make(map[inventoryKey]*domain.TruckInventory)}
}

// SetStock loads one inventory row, replacing any existing one.
func (r *InventoryRepository) SetStock(truckID, productID, qtyFull, qtyEmpty, qtyReserved int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[inventoryKey{truckID, productID}] = &domain.TruckInventory{
		TruckID:     truckID,
		ProductID:   productID,
		QtyFull:     qtyFull,
		QtyEmpty:    qtyEmpty,
		QtyReserved: qtyReserved,
	}
}

func (r *InventoryRepository) GetInventory(_ context.Context, truckID, productID int) (*domain.TruckInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[inventoryKey{truckID, productID}]
	if !ok {
		return nil, domain.ErrInventoryNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *InventoryRepository) EnsureInventory(_ context.Context, truckID, productID int) (*domain.TruckInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := inventoryKey{truckID, productID}
	row, ok := r.rows[key]
	if !ok {
		row = &domain.TruckInventory{TruckID: truckID, ProductID: productID}
		r.rows[key] = row
	}
	cp := *row
	return &cp, nil
}

func (r *InventoryRepository) Reserve(_ context.Context, truckID, productID, qty int) (*domain.TruckInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[inventoryKey{truckID, productID}]
	if !ok {
		return nil, domain.ErrInventoryNotFound
	}

	if row.Available() < qty {
		return nil, &domain.InsufficientStockError{
			TruckID:   truckID,
			ProductID: productID,
			Requested: qty,
			Available: row.Available(),
		}
	}

	row.QtyReserved += qty
	cp := *row
	return &cp, nil
}

func (r *InventoryRepository) Release(_ context.Context, truckID, productID, qty int) (*domain.TruckInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[inventoryKey{truckID, productID}]
	if !ok {
		return nil, domain.ErrInventoryNotFound
	}

	if row.QtyReserved < qty {
		return nil, &domain.ReleaseExceedsReservedError{
			TruckID:   truckID,
			ProductID: productID,
			Requested: qty,
			Reserved:  row.QtyReserved,
		}
	}

	row.QtyReserved -= qty
	cp := *row
	return &cp, nil
}
