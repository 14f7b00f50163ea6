package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
)

// SQLTruckRepository is the Postgres-backed TruckRepository.
type SQLTruckRepository struct{ DB *sql.DB }

func NewSQLTruckRepository(db *sql.DB) *SQLTruckRepository {
	return &SQLTruckRepository{DB: db}
}

func (s *SQLTruckRepository) GetTruck(ctx context.Context, truckID int) (_ *domain.Truck, err error) {
	defer obs.Time(ctx, "repo.trucks.GetTruck")(&err)

	if s.DB == nil {
		return nil, errors.New("truck repository: DB is nil")
	}

	q := `
	SELECT truck_id, code, capacity_kg, cylinder_count, active
	FROM trucks
	WHERE truck_id = $1;
	`
	var (
		t         domain.Truck
		capacity  sql.NullFloat64
		cylinders sql.NullInt64
	)
	row := s.DB.QueryRowContext(ctx, q, truckID)
	if err := row.Scan(&t.TruckID, &t.Code, &capacity, &cylinders, &t.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get truck %d: %w", truckID, domain.ErrTruckNotFound)
		}
		return nil, fmt.Errorf("get truck %d: scan row: %w", truckID, err)
	}

	if capacity.Valid {
		v := capacity.Float64
		t.CapacityKg = &v
	}
	if cylinders.Valid {
		v := int(cylinders.Int64)
		t.CylinderCount = &v
	}
	return &t, nil
}

func (s *SQLTruckRepository) ListActiveTrucks(ctx context.Context) (_ []*domain.Truck, err error) {
	defer obs.Time(ctx, "repo.trucks.ListActiveTrucks")(&err)

	if s.DB == nil {
		return nil, errors.New("truck repository: DB is nil")
	}

	q := `
	SELECT truck_id, code, capacity_kg, cylinder_count, active
	FROM trucks
	WHERE active
	ORDER BY code;
	`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list active trucks: query trucks table: %w", err)
	}
	defer rows.Close()

	trucks := make([]*domain.Truck, 0, 16)
	for rows.Next() {
		var (
			t         domain.Truck
			capacity  sql.NullFloat64
			cylinders sql.NullInt64
		)
		if err := rows.Scan(&t.TruckID, &t.Code, &capacity, &cylinders, &t.Active); err != nil {
			return nil, fmt.Errorf("list active trucks: scan row: %w", err)
		}
		if capacity.Valid {
			v := capacity.Float64
			t.CapacityKg = &v
		}
		if cylinders.Valid {
			v := int(cylinders.Int64)
			t.CylinderCount = &v
		}
		trucks = append(trucks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active trucks: row iteration: %w", err)
	}

	return trucks, nil
}
