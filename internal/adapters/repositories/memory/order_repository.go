package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/ports"
)

// OrderRepository is an in-memory OrderRepository for tests and local runs.
// UpdateAssignmentErr, when set, makes every assignment update fail; tests
// use it to exercise the swallowed-secondary-write path.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[int]*domain.Order

	UpdateAssignmentErr error
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[int]*domain.Order)}
}

// AddOrder loads one order into the repository.
func (r *OrderRepository) AddOrder(o *domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := copyOrder(o)
	r.orders[o.OrderID] = cp
}

func (r *OrderRepository) GetOrder(_ context.Context, orderID int) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (r *OrderRepository) ListAssignedOrders(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if o.AssignedTruckID == nil {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (r *OrderRepository) UpdateAssignment(_ context.Context, orderID int, truckID *int, date *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpdateAssignmentErr != nil {
		return r.UpdateAssignmentErr
	}

	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}

	if truckID == nil {
		o.AssignedTruckID = nil
		o.DeliveryDate = nil
		return nil
	}
	tid := *truckID
	d := *date
	o.AssignedTruckID = &tid
	o.DeliveryDate = &d
	return nil
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	if o.AssignedTruckID != nil {
		v := *o.AssignedTruckID
		cp.AssignedTruckID = &v
	}
	if o.DeliveryDate != nil {
		v := *o.DeliveryDate
		cp.DeliveryDate = &v
	}
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &cp
}
