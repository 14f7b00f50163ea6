package ports

import (
	"context"

	"fleet-allocation-service/internal/domain"
)

// Port: a boundary for product variant reference data.
type ProductRepository interface {
	// GetVariant returns the variant or domain.ErrVariantNotFound.
	GetVariant(ctx context.Context, productID int) (*domain.ProductVariant, error)
}
