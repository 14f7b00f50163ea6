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

// SQLOrderRepository is the Postgres-backed OrderRepository.
type SQLOrderRepository struct{ DB *sql.DB }

func NewSQLOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: db}
}

func (s *SQLOrderRepository) GetOrder(ctx context.Context, orderID int) (_ *domain.Order, err error) {
	defer obs.Time(ctx, "repo.orders.GetOrder")(&err)

	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	q := `
	SELECT order_id, customer_name, delivery_address, total_amount, assigned_truck_id, delivery_date
	FROM orders
	WHERE order_id = $1;
	`
	var (
		o       domain.Order
		truckID sql.NullInt64
		date    sql.NullTime
	)
	row := s.DB.QueryRowContext(ctx, q, orderID)
	if err := row.Scan(&o.OrderID, &o.CustomerName, &o.DeliveryAddress, &o.TotalAmount, &truckID, &date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get order %d: %w", orderID, domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("get order %d: scan row: %w", orderID, err)
	}

	if truckID.Valid {
		v := int(truckID.Int64)
		o.AssignedTruckID = &v
	}
	if date.Valid {
		v := date.Time
		o.DeliveryDate = &v
	}

	linesQuery := `
	SELECT product_id, quantity
	FROM order_lines
	WHERE order_id = $1
	ORDER BY line_no;
	`
	rows, err := s.DB.QueryContext(ctx, linesQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %d: query order_lines table: %w", orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("get order %d: scan line: %w", orderID, err)
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get order %d: line iteration: %w", orderID, err)
	}

	return &o, nil
}

func (s *SQLOrderRepository) ListAssignedOrders(ctx context.Context) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "repo.orders.ListAssignedOrders")(&err)

	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	q := `
	SELECT order_id, customer_name, delivery_address, total_amount, assigned_truck_id, delivery_date
	FROM orders
	WHERE assigned_truck_id IS NOT NULL
	ORDER BY order_id;
	`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list assigned orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 64)
	for rows.Next() {
		var (
			o       domain.Order
			truckID sql.NullInt64
			date    sql.NullTime
		)
		if err := rows.Scan(&o.OrderID, &o.CustomerName, &o.DeliveryAddress, &o.TotalAmount, &truckID, &date); err != nil {
			return nil, fmt.Errorf("list assigned orders: scan row: %w", err)
		}
		if truckID.Valid {
			v := int(truckID.Int64)
			o.AssignedTruckID = &v
		}
		if date.Valid {
			v := date.Time
			o.DeliveryDate = &v
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assigned orders: row iteration: %w", err)
	}

	return orders, nil
}

func (s *SQLOrderRepository) UpdateAssignment(ctx context.Context, orderID int, truckID *int, date *time.Time) (err error) {
	defer obs.Time(ctx, "repo.orders.UpdateAssignment")(&err)

	if s.DB == nil {
		return errors.New("order repository: DB is nil")
	}

	q := `
	UPDATE orders
	SET assigned_truck_id = $2,
		delivery_date = $3
	WHERE order_id = $1;
	`
	res, err := s.DB.ExecContext(ctx, q, orderID, truckID, date)
	if err != nil {
		return fmt.Errorf("update assignment order=%d: %w", orderID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update assignment order=%d: rows affected: %w", orderID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update assignment: %w", domain.ErrOrderNotFound)
	}

	return nil
}
