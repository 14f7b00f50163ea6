package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/keylock"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

// AllocationService commits and removes order-to-truck bindings.
//
// The capacity check and the allocation insert are serialized per truck
// through a keyed mutex, so two concurrent allocations can never both read
// the same available capacity and jointly overallocate a truck.
type AllocationService struct {
	Orders      ports.OrderRepository
	Trucks      ports.TruckRepository
	Allocations ports.AllocationRepository
	Weight      *WeightService
	Scorer      *ScoreService
	Capacity    *CapacityService

	truckLocks *keylock.KeyLock
}

func NewAllocationService(
	orders ports.OrderRepository,
	trucks ports.TruckRepository,
	allocations ports.AllocationRepository,
	weight *WeightService,
	scorer *ScoreService,
	capacity *CapacityService,
) *AllocationService {
	return &AllocationService{
		Orders:      orders,
		Trucks:      trucks,
		Allocations: allocations,
		Weight:      weight,
		Scorer:      scorer,
		Capacity:    capacity,
		truckLocks:  keylock.New(),
	}
}

type AllocateRequest struct {
	OrderID   int
	TruckID   *int // nil lets the scorer pick the best-ranked truck
	Date      time.Time
	Force     bool // skip the capacity check
	CreatedBy string
}

// Allocate computes the order's weight, picks a truck (explicitly or via the
// scorer), checks capacity unless forced, and commits the binding.
//
// The binding is two writes: the TruckAllocation insert (primary) and the
// order's denormalized assignment-field update (secondary). A secondary-write
// failure is logged and swallowed; the allocation still stands and the
// reconciler repairs the drift later.
func (s *AllocationService) Allocate(ctx context.Context, req AllocateRequest) (_ *domain.TruckAllocation, err error) {
	defer obs.Time(ctx, "allocation.Allocate")(&err)

	order, err := s.Orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("allocate: get order %d: %w", req.OrderID, err)
	}

	weightKg, err := s.Weight.OrderWeight(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("allocate: %w", err)
	}

	var truck *domain.Truck
	if req.TruckID != nil {
		truck, err = s.Trucks.GetTruck(ctx, *req.TruckID)
		if err != nil {
			return nil, fmt.Errorf("allocate: %w", err)
		}
	} else {
		scores, err := s.Scorer.RankTrucks(ctx, weightKg, req.Date)
		if err != nil {
			return nil, fmt.Errorf("allocate: %w", err)
		}
		if len(scores) == 0 || scores[0].Score <= 0 {
			return nil, domain.ErrNoSuitableTruck
		}
		truck = scores[0].Truck
	}

	// Hold the truck's lock across the capacity read and the insert so a
	// concurrent allocation cannot pass the check on the same headroom.
	unlock := s.truckLocks.Lock(truck.TruckID)
	defer unlock()

	snap, err := s.Capacity.SnapshotForTruck(ctx, truck, req.Date)
	if err != nil {
		return nil, fmt.Errorf("allocate: %w", err)
	}

	if !req.Force && snap.AvailableCapacityKg < weightKg {
		return nil, &domain.InsufficientCapacityError{
			TruckID:     truck.TruckID,
			AvailableKg: snap.AvailableCapacityKg,
			RequiredKg:  weightKg,
		}
	}

	created, err := s.Allocations.InsertAllocation(ctx, &domain.TruckAllocation{
		TruckID:           truck.TruckID,
		OrderID:           order.OrderID,
		Date:              req.Date,
		EstimatedWeightKg: weightKg,
		Status:            domain.AllocationPlanned,
		CreatedBy:         req.CreatedBy,
		CreatedAt:         time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("allocate: insert allocation: %w", err)
	}

	truckID := truck.TruckID
	date := req.Date
	if err := s.Orders.UpdateAssignment(ctx, order.OrderID, &truckID, &date); err != nil {
		log.Printf(
			"level=warn op=allocation.Allocate allocation_id=%d order_id=%d truck_id=%d msg=\"order assignment update failed, allocation stands\" err=%v",
			created.AllocationID, order.OrderID, truck.TruckID, err,
		)
	}

	return created, nil
}

// Remove deletes the allocation and clears the order's assignment fields.
// As with Allocate, the order update is the secondary write: its failure is
// logged only, leaving the drift to the reconciler.
func (s *AllocationService) Remove(ctx context.Context, allocationID int) (err error) {
	defer obs.Time(ctx, "allocation.Remove")(&err)

	alloc, err := s.Allocations.GetAllocation(ctx, allocationID)
	if err != nil {
		return fmt.Errorf("remove allocation: %w", err)
	}

	if err := s.Allocations.DeleteAllocation(ctx, allocationID); err != nil {
		return fmt.Errorf("remove allocation %d: %w", allocationID, err)
	}

	if err := s.Orders.UpdateAssignment(ctx, alloc.OrderID, nil, nil); err != nil {
		log.Printf(
			"level=warn op=allocation.Remove allocation_id=%d order_id=%d msg=\"order assignment clear failed, deletion stands\" err=%v",
			allocationID, alloc.OrderID, err,
		)
	}

	return nil
}
