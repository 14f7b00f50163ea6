package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTrucksQuery := `
	CREATE TABLE IF NOT EXISTS trucks (
		truck_id INTEGER PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		capacity_kg DOUBLE PRECISION,
		cylinder_count INTEGER,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createVariantsQuery := `
	CREATE TABLE IF NOT EXISTS product_variants (
		product_id INTEGER PRIMARY KEY,
		parent_product_id INTEGER,
		name TEXT NOT NULL,
		variant TEXT NOT NULL DEFAULT '',
		capacity_kg DOUBLE PRECISION,
		tare_weight_kg DOUBLE PRECISION
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		customer_name TEXT NOT NULL,
		delivery_address TEXT NOT NULL DEFAULT '',
		total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		assigned_truck_id INTEGER REFERENCES trucks(truck_id),
		delivery_date DATE
	);
	`

	createOrderLinesQuery := `
	CREATE TABLE IF NOT EXISTS order_lines (
		order_id INTEGER NOT NULL REFERENCES orders(order_id),
		line_no INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (order_id, line_no)
	);
	`

	createAllocationsQuery := `
	CREATE TABLE IF NOT EXISTS truck_allocations (
		allocation_id SERIAL PRIMARY KEY,
		truck_id INTEGER NOT NULL REFERENCES trucks(truck_id),
		order_id INTEGER NOT NULL REFERENCES orders(order_id),
		alloc_date DATE NOT NULL,
		estimated_weight_kg DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'planned',
		stop_sequence INTEGER,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createInventoryQuery := `
	CREATE TABLE IF NOT EXISTS truck_inventory (
		truck_id INTEGER NOT NULL REFERENCES trucks(truck_id),
		product_id INTEGER NOT NULL,
		qty_full INTEGER NOT NULL DEFAULT 0,
		qty_empty INTEGER NOT NULL DEFAULT 0,
		qty_reserved INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (truck_id, product_id),
		CHECK (qty_reserved >= 0 AND qty_reserved <= qty_full)
	);
	`

	createFallbackEventsQuery := `
	CREATE TABLE IF NOT EXISTS weight_fallback_events (
		event_id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		reason TEXT NOT NULL,
		unit_weight_kg DOUBLE PRECISION NOT NULL,
		occurred_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_truck_allocations_truck_date
	ON truck_allocations(truck_id, alloc_date);
	`

	statements := []string{
		createTrucksQuery,
		createVariantsQuery,
		createOrdersQuery,
		createOrderLinesQuery,
		createAllocationsQuery,
		createInventoryQuery,
		createFallbackEventsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type TruckSeed struct {
	TruckID       int      `json:"truck_id"`
	Code          string   `json:"code"`
	CapacityKg    *float64 `json:"capacity_kg"`
	CylinderCount *int     `json:"cylinder_count"`
	Active        bool     `json:"active"`
}

type VariantSeed struct {
	ProductID       int      `json:"product_id"`
	ParentProductID *int     `json:"parent_product_id"`
	Name            string   `json:"name"`
	Variant         string   `json:"variant"`
	CapacityKg      *float64 `json:"capacity_kg"`
	TareWeightKg    *float64 `json:"tare_weight_kg"`
}

type OrderLineSeed struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type OrderSeed struct {
	OrderID         int             `json:"order_id"`
	CustomerName    string          `json:"customer_name"`
	DeliveryAddress string          `json:"delivery_address"`
	TotalAmount     string          `json:"total_amount"`
	Lines           []OrderLineSeed `json:"lines"`
}

type InventorySeed struct {
	TruckID   int `json:"truck_id"`
	ProductID int `json:"product_id"`
	QtyFull   int `json:"qty_full"`
	QtyEmpty  int `json:"qty_empty"`
}

type SeedFile struct {
	Trucks    []TruckSeed     `json:"trucks"`
	Variants  []VariantSeed   `json:"variants"`
	Orders    []OrderSeed     `json:"orders"`
	Inventory []InventorySeed `json:"inventory"`
}

// Populate the database with fleet and catalog data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed fleet: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed fleet: parse json: %w", err)
	}

	for i, t := range data.Trucks {
		if t.TruckID <= 0 {
			return fmt.Errorf("seed fleet: invalid truck_id at index %d: %d", i+1, t.TruckID)
		}
		if strings.TrimSpace(t.Code) == "" {
			return fmt.Errorf("seed fleet: truck at index %d: code cannot be empty", i+1)
		}
	}
	for i, o := range data.Orders {
		if o.OrderID <= 0 {
			return fmt.Errorf("seed fleet: invalid order_id at index %d: %d", i+1, o.OrderID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed fleet: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	truckQuery := `
	INSERT INTO trucks (truck_id, code, capacity_kg, cylinder_count, active)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (truck_id) DO UPDATE
	SET code = EXCLUDED.code,
		capacity_kg = EXCLUDED.capacity_kg,
		cylinder_count = EXCLUDED.cylinder_count,
		active = EXCLUDED.active;
	`
	for _, t := range data.Trucks {
		if _, err := tx.Exec(truckQuery, t.TruckID, t.Code, t.CapacityKg, t.CylinderCount, t.Active); err != nil {
			return fmt.Errorf("seed fleet: insert truck_id=%d: %w", t.TruckID, err)
		}
	}

	variantQuery := `
	INSERT INTO product_variants (product_id, parent_product_id, name, variant, capacity_kg, tare_weight_kg)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (product_id) DO UPDATE
	SET parent_product_id = EXCLUDED.parent_product_id,
		name = EXCLUDED.name,
		variant = EXCLUDED.variant,
		capacity_kg = EXCLUDED.capacity_kg,
		tare_weight_kg = EXCLUDED.tare_weight_kg;
	`
	for _, v := range data.Variants {
		if _, err := tx.Exec(variantQuery, v.ProductID, v.ParentProductID, v.Name, v.Variant, v.CapacityKg, v.TareWeightKg); err != nil {
			return fmt.Errorf("seed fleet: insert product_id=%d: %w", v.ProductID, err)
		}
	}

	orderQuery := `
	INSERT INTO orders (order_id, customer_name, delivery_address, total_amount)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (order_id) DO UPDATE
	SET customer_name = EXCLUDED.customer_name,
		delivery_address = EXCLUDED.delivery_address,
		total_amount = EXCLUDED.total_amount;
	`
	lineQuery := `
	INSERT INTO order_lines (order_id, line_no, product_id, quantity)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (order_id, line_no) DO UPDATE
	SET product_id = EXCLUDED.product_id,
		quantity = EXCLUDED.quantity;
	`
	for _, o := range data.Orders {
		amount := strings.TrimSpace(o.TotalAmount)
		if amount == "" {
			amount = "0"
		}
		if _, err := tx.Exec(orderQuery, o.OrderID, o.CustomerName, o.DeliveryAddress, amount); err != nil {
			return fmt.Errorf("seed fleet: insert order_id=%d: %w", o.OrderID, err)
		}
		for i, l := range o.Lines {
			if _, err := tx.Exec(lineQuery, o.OrderID, i+1, l.ProductID, l.Quantity); err != nil {
				return fmt.Errorf("seed fleet: insert line %d of order_id=%d: %w", i+1, o.OrderID, err)
			}
		}
	}

	inventoryQuery := `
	INSERT INTO truck_inventory (truck_id, product_id, qty_full, qty_empty, qty_reserved)
	VALUES ($1, $2, $3, $4, 0)
	ON CONFLICT (truck_id, product_id) DO UPDATE
	SET qty_full = EXCLUDED.qty_full,
		qty_empty = EXCLUDED.qty_empty;
	`
	for _, inv := range data.Inventory {
		if _, err := tx.Exec(inventoryQuery, inv.TruckID, inv.ProductID, inv.QtyFull, inv.QtyEmpty); err != nil {
			return fmt.Errorf("seed fleet: insert inventory truck_id=%d product_id=%d: %w", inv.TruckID, inv.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed fleet: commit tx: %w", err)
	}

	return nil
}
