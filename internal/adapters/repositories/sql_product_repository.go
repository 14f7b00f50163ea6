package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
)

// SQLProductRepository is the Postgres-backed ProductRepository.
type SQLProductRepository struct{ DB *sql.DB }

func NewSQLProductRepository(db *sql.DB) *SQLProductRepository {
	return &SQLProductRepository{DB: db}
}

func (s *SQLProductRepository) GetVariant(ctx context.Context, productID int) (_ *domain.ProductVariant, err error) {
	defer obs.Time(ctx, "repo.products.GetVariant")(&err)

	if s.DB == nil {
		return nil, errors.New("product repository: DB is nil")
	}

	q := `
	SELECT product_id, parent_product_id, name, variant, capacity_kg, tare_weight_kg
	FROM product_variants
	WHERE product_id = $1;
	`
	var (
		v      domain.ProductVariant
		parent sql.NullInt64
		capKg  sql.NullFloat64
		tare   sql.NullFloat64
	)
	row := s.DB.QueryRowContext(ctx, q, productID)
	if err := row.Scan(&v.ProductID, &parent, &v.Name, &v.Variant, &capKg, &tare); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get variant %d: %w", productID, domain.ErrVariantNotFound)
		}
		return nil, fmt.Errorf("get variant %d: scan row: %w", productID, err)
	}

	if parent.Valid {
		p := int(parent.Int64)
		v.ParentProductID = &p
	}
	if capKg.Valid {
		c := capKg.Float64
		v.CapacityKg = &c
	}
	if tare.Valid {
		t := tare.Float64
		v.TareWeightKg = &t
	}
	return &v, nil
}
