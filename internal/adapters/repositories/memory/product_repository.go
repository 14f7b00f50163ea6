package memory

import (
	"context"
	"sync"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/ports"
)

// ProductRepository is an in-memory ProductRepository for tests and local
// runs. GetVariantErr, when set, makes every lookup fail; tests use it to
// exercise storage-fault propagation.
type ProductRepository struct {
	mu       sync.RWMutex
	variants map[int]*domain.ProductVariant

	GetVariantErr error
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository() *ProductRepository {
	return &ProductRepository{variants: make(map[int]*domain.ProductVariant)}
}

// AddVariant loads one product variant into the repository.
func (r *ProductRepository) AddVariant(v *domain.ProductVariant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.variants[v.ProductID] = &cp
}

func (r *ProductRepository) GetVariant(_ context.Context, productID int) (*domain.ProductVariant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.GetVariantErr != nil {
		return nil, r.GetVariantErr
	}

	v, ok := r.variants[productID]
	if !ok {
		return nil, domain.ErrVariantNotFound
	}
	cp := *v
	return &cp, nil
}
