package memory

import (
	"context"
	"sort"
	"sync"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/ports"
)

// TruckRepository is an in-memory TruckRepository for tests and local runs.
type TruckRepository struct {
	mu     sync.RWMutex
	trucks map[int]*domain.Truck
}

var _ ports.TruckRepository = (*TruckRepository)(nil)

func NewTruckRepository() *TruckRepository {
	return &TruckRepository{trucks: make(map[int]*domain.Truck)}
}

// AddTruck loads one truck into the repository.
func (r *TruckRepository) AddTruck(t *domain.Truck) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.trucks[t.TruckID] = &cp
}

func (r *TruckRepository) GetTruck(_ context.Context, truckID int) (*domain.Truck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trucks[truckID]
	if !ok {
		return nil, domain.ErrTruckNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *TruckRepository) ListActiveTrucks(_ context.Context) ([]*domain.Truck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Truck, 0, len(r.trucks))
	for _, t := range r.trucks {
		if !t.Active {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
