package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
)

// SQLAllocationRepository is the Postgres-backed AllocationRepository.
type SQLAllocationRepository struct{ DB *sql.DB }

func NewSQLAllocationRepository(db *sql.DB) *SQLAllocationRepository {
	return &SQLAllocationRepository{DB: db}
}

const allocationColumns = `
	allocation_id, truck_id, order_id, alloc_date, estimated_weight_kg,
	status, stop_sequence, created_by, created_at`

func scanAllocation(row interface{ Scan(...any) error }) (*domain.TruckAllocation, error) {
	var (
		a    domain.TruckAllocation
		stop sql.NullInt64
	)
	if err := row.Scan(
		&a.AllocationID, &a.TruckID, &a.OrderID, &a.Date, &a.EstimatedWeightKg,
		&a.Status, &stop, &a.CreatedBy, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if stop.Valid {
		v := int(stop.Int64)
		a.StopSequence = &v
	}
	return &a, nil
}

func (s *SQLAllocationRepository) GetAllocation(ctx context.Context, allocationID int) (_ *domain.TruckAllocation, err error) {
	defer obs.Time(ctx, "repo.allocations.GetAllocation")(&err)

	if s.DB == nil {
		return nil, errors.New("allocation repository: DB is nil")
	}

	q := `SELECT` + allocationColumns + `
	FROM truck_allocations
	WHERE allocation_id = $1;
	`
	a, err := scanAllocation(s.DB.QueryRowContext(ctx, q, allocationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get allocation %d: %w", allocationID, domain.ErrAllocationNotFound)
		}
		return nil, fmt.Errorf("get allocation %d: scan row: %w", allocationID, err)
	}
	return a, nil
}

func (s *SQLAllocationRepository) InsertAllocation(ctx context.Context, alloc *domain.TruckAllocation) (_ *domain.TruckAllocation, err error) {
	defer obs.Time(ctx, "repo.allocations.InsertAllocation")(&err)

	if s.DB == nil {
		return nil, errors.New("allocation repository: DB is nil")
	}

	q := `
	INSERT INTO truck_allocations (
		truck_id, order_id, alloc_date, estimated_weight_kg,
		status, stop_sequence, created_by, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING allocation_id;
	`
	created := *alloc
	row := s.DB.QueryRowContext(ctx, q,
		alloc.TruckID, alloc.OrderID, alloc.Date, alloc.EstimatedWeightKg,
		alloc.Status, alloc.StopSequence, alloc.CreatedBy, alloc.CreatedAt,
	)
	if err := row.Scan(&created.AllocationID); err != nil {
		return nil, fmt.Errorf("insert allocation order=%d truck=%d: %w", alloc.OrderID, alloc.TruckID, err)
	}
	return &created, nil
}

func (s *SQLAllocationRepository) DeleteAllocation(ctx context.Context, allocationID int) (err error) {
	defer obs.Time(ctx, "repo.allocations.DeleteAllocation")(&err)

	if s.DB == nil {
		return errors.New("allocation repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM truck_allocations WHERE allocation_id = $1;`, allocationID)
	if err != nil {
		return fmt.Errorf("delete allocation %d: %w", allocationID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete allocation %d: rows affected: %w", allocationID, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete allocation %d: %w", allocationID, domain.ErrAllocationNotFound)
	}

	return nil
}

func (s *SQLAllocationRepository) ListActiveByTruckAndDate(ctx context.Context, truckID int, date time.Time) (_ []*domain.TruckAllocation, err error) {
	defer obs.Time(ctx, "repo.allocations.ListActiveByTruckAndDate")(&err)

	if s.DB == nil {
		return nil, errors.New("allocation repository: DB is nil")
	}

	q := `SELECT` + allocationColumns + `
	FROM truck_allocations
	WHERE truck_id = $1
		AND alloc_date = $2
		AND status <> 'cancelled'
	ORDER BY stop_sequence NULLS LAST, allocation_id;
	`
	rows, err := s.DB.QueryContext(ctx, q, truckID, date)
	if err != nil {
		return nil, fmt.Errorf("list allocations truck=%d: query truck_allocations table: %w", truckID, err)
	}
	defer rows.Close()

	return collectAllocations(rows)
}

func (s *SQLAllocationRepository) ListActive(ctx context.Context) (_ []*domain.TruckAllocation, err error) {
	defer obs.Time(ctx, "repo.allocations.ListActive")(&err)

	if s.DB == nil {
		return nil, errors.New("allocation repository: DB is nil")
	}

	q := `SELECT` + allocationColumns + `
	FROM truck_allocations
	WHERE status <> 'cancelled'
	ORDER BY allocation_id;
	`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list active allocations: query truck_allocations table: %w", err)
	}
	defer rows.Close()

	return collectAllocations(rows)
}

func collectAllocations(rows *sql.Rows) ([]*domain.TruckAllocation, error) {
	allocs := make([]*domain.TruckAllocation, 0, 32)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("list allocations: scan row: %w", err)
		}
		allocs = append(allocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list allocations: row iteration: %w", err)
	}
	return allocs, nil
}
