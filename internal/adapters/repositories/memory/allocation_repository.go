package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/ports"
)

// AllocationRepository is an in-memory AllocationRepository for tests and
// local runs. Identifiers are assigned sequentially on insert.
type AllocationRepository struct {
	mu     sync.RWMutex
	nextID int
	allocs map[int]*domain.TruckAllocation
}

var _ ports.AllocationRepository = (*AllocationRepository)(nil)

func NewAllocationRepository() *AllocationRepository {
	return &AllocationRepository{nextID: 1, allocs: make(map[int]*domain.TruckAllocation)}
}

func (r *AllocationRepository) GetAllocation(_ context.Context, allocationID int) (*domain.TruckAllocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.allocs[allocationID]
	if !ok {
		return nil, domain.ErrAllocationNotFound
	}
	return copyAllocation(a), nil
}

func (r *AllocationRepository) InsertAllocation(_ context.Context, alloc *domain.TruckAllocation) (*domain.TruckAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := copyAllocation(alloc)
	cp.AllocationID = r.nextID
	r.nextID++
	r.allocs[cp.AllocationID] = cp
	return copyAllocation(cp), nil
}

func (r *AllocationRepository) DeleteAllocation(_ context.Context, allocationID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.allocs[allocationID]; !ok {
		return domain.ErrAllocationNotFound
	}
	delete(r.allocs, allocationID)
	return nil
}

func (r *AllocationRepository) ListActiveByTruckAndDate(_ context.Context, truckID int, date time.Time) ([]*domain.TruckAllocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.TruckAllocation, 0)
	for _, a := range r.allocs {
		if a.TruckID != truckID || !a.CountsTowardLoad() || !domain.SameDay(a.Date, date) {
			continue
		}
		out = append(out, copyAllocation(a))
	}
	sortByStopSequence(out)
	return out, nil
}

func (r *AllocationRepository) ListActive(_ context.Context) ([]*domain.TruckAllocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.TruckAllocation, 0)
	for _, a := range r.allocs {
		if !a.CountsTowardLoad() {
			continue
		}
		out = append(out, copyAllocation(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AllocationID < out[j].AllocationID })
	return out, nil
}

// SetStatus updates one allocation's lifecycle status. Test seam: the SQL
// adapter's counterpart is driven by the back-office screens, outside this core.
func (r *AllocationRepository) SetStatus(allocationID int, status domain.AllocationStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.allocs[allocationID]; ok {
		a.Status = status
	}
}

// Stop sequence ascending, unsequenced rows last, id as the stable tail.
func sortByStopSequence(allocs []*domain.TruckAllocation) {
	sort.Slice(allocs, func(i, j int) bool {
		si, sj := allocs[i].StopSequence, allocs[j].StopSequence
		switch {
		case si != nil && sj != nil && *si != *sj:
			return *si < *sj
		case si != nil && sj == nil:
			return true
		case si == nil && sj != nil:
			return false
		default:
			return allocs[i].AllocationID < allocs[j].AllocationID
		}
	})
}

func copyAllocation(a *domain.TruckAllocation) *domain.TruckAllocation {
	cp := *a
	if a.StopSequence != nil {
		v := *a.StopSequence
		cp.StopSequence = &v
	}
	return &cp
}
