package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
)

// SQLInventoryRepository is the Postgres-backed InventoryRepository.
//
// Reserve and Release are single conditional UPDATEs: the availability check
// and the mutation land in one statement, so concurrent callers racing on the
// same (truck, product) row cannot jointly overshoot the stock.
type SQLInventoryRepository struct{ DB *sql.DB }

func NewSQLInventoryRepository(db *sql.DB) *SQLInventoryRepository {
	return &SQLInventoryRepository{DB: db}
}

func (s *SQLInventoryRepository) GetInventory(ctx context.Context, truckID, productID int) (_ *domain.TruckInventory, err error) {
	defer obs.Time(ctx, "repo.inventory.GetInventory")(&err)

	if s.DB == nil {
		return nil, errors.New("inventory repository: DB is nil")
	}

	q := `
	SELECT truck_id, product_id, qty_full, qty_empty, qty_reserved
	FROM truck_inventory
	WHERE truck_id = $1 AND product_id = $2;
	`
	var inv domain.TruckInventory
	row := s.DB.QueryRowContext(ctx, q, truckID, productID)
	if err := row.Scan(&inv.TruckID, &inv.ProductID, &inv.QtyFull, &inv.QtyEmpty, &inv.QtyReserved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get inventory truck=%d product=%d: %w", truckID, productID, domain.ErrInventoryNotFound)
		}
		return nil, fmt.Errorf("get inventory truck=%d product=%d: scan row: %w", truckID, productID, err)
	}
	return &inv, nil
}

func (s *SQLInventoryRepository) EnsureInventory(ctx context.Context, truckID, productID int) (_ *domain.TruckInventory, err error) {
	defer obs.Time(ctx, "repo.inventory.EnsureInventory")(&err)

	if s.DB == nil {
		return nil, errors.New("inventory repository: DB is nil")
	}

	q := `
	INSERT INTO truck_inventory (truck_id, product_id, qty_full, qty_empty, qty_reserved)
	VALUES ($1, $2, 0, 0, 0)
	ON CONFLICT (truck_id, product_id) DO NOTHING;
	`
	if _, err := s.DB.ExecContext(ctx, q, truckID, productID); err != nil {
		return nil, fmt.Errorf("ensure inventory truck=%d product=%d: %w", truckID, productID, err)
	}

	return s.GetInventory(ctx, truckID, productID)
}

func (s *SQLInventoryRepository) Reserve(ctx context.Context, truckID, productID, qty int) (_ *domain.TruckInventory, err error) {
	defer obs.Time(ctx, "repo.inventory.Reserve")(&err)

	if s.DB == nil {
		return nil, errors.New("inventory repository: DB is nil")
	}

	q := `
	UPDATE truck_inventory
	SET qty_reserved = qty_reserved + $3
	WHERE truck_id = $1
		AND product_id = $2
		AND qty_full - qty_reserved >= $3
	RETURNING truck_id, product_id, qty_full, qty_empty, qty_reserved;
	`
	var inv domain.TruckInventory
	row := s.DB.QueryRowContext(ctx, q, truckID, productID, qty)
	if err := row.Scan(&inv.TruckID, &inv.ProductID, &inv.QtyFull, &inv.QtyEmpty, &inv.QtyReserved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Condition not met: distinguish a missing row from a shortfall.
			current, getErr := s.GetInventory(ctx, truckID, productID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, &domain.InsufficientStockError{
				TruckID:   truckID,
				ProductID: productID,
				Requested: qty,
				Available: current.Available(),
			}
		}
		return nil, fmt.Errorf("reserve inventory truck=%d product=%d: %w", truckID, productID, err)
	}
	return &inv, nil
}

func (s *SQLInventoryRepository) Release(ctx context.Context, truckID, productID, qty int) (_ *domain.TruckInventory, err error) {
	defer obs.Time(ctx, "repo.inventory.Release")(&err)

	if s.DB == nil {
		return nil, errors.New("inventory repository: DB is nil")
	}

	q := `
	UPDATE truck_inventory
	SET qty_reserved = qty_reserved - $3
	WHERE truck_id = $1
		AND product_id = $2
		AND qty_reserved >= $3
	RETURNING truck_id, product_id, qty_full, qty_empty, qty_reserved;
	`
	var inv domain.TruckInventory
	row := s.DB.QueryRowContext(ctx, q, truckID, productID, qty)
	if err := row.Scan(&inv.TruckID, &inv.ProductID, &inv.QtyFull, &inv.QtyEmpty, &inv.QtyReserved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			current, getErr := s.GetInventory(ctx, truckID, productID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, &domain.ReleaseExceedsReservedError{
				TruckID:   truckID,
				ProductID: productID,
				Requested: qty,
				Reserved:  current.QtyReserved,
			}
		}
		return nil, fmt.Errorf("release inventory truck=%d product=%d: %w", truckID, productID, err)
	}
	return &inv, nil
}
