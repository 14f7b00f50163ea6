package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fleet-allocation-service/internal/domain"
)

func TestAllocateExplicitTruck(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 1000)
	f.addVariant(1, 25.0)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 4})
	d := day(2026, time.March, 10)

	alloc, err := f.allocator.Allocate(context.Background(), AllocateRequest{
		OrderID:   100,
		TruckID:   iptr(1),
		Date:      d,
		CreatedBy: "dispatcher",
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if alloc.AllocationID == 0 {
		t.Fatal("expected a generated allocation id")
	}
	if alloc.TruckID != 1 || alloc.OrderID != 100 {
		t.Fatalf("allocation binds truck=%d order=%d, want 1/100", alloc.TruckID, alloc.OrderID)
	}
	if alloc.EstimatedWeightKg != 100.0 {
		t.Fatalf("estimated weight = %v, want 100.0", alloc.EstimatedWeightKg)
	}
	if alloc.Status != domain.AllocationPlanned {
		t.Fatalf("status = %s, want planned", alloc.Status)
	}

	// The denormalized assignment fields follow the allocation.
	order, err := f.orders.GetOrder(context.Background(), 100)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order.AssignedTruckID == nil || *order.AssignedTruckID != 1 {
		t.Fatalf("order assigned truck = %v, want 1", order.AssignedTruckID)
	}
	if order.DeliveryDate == nil || !domain.SameDay(*order.DeliveryDate, d) {
		t.Fatalf("order delivery date = %v, want %v", order.DeliveryDate, d)
	}
}

func TestAllocateAutoPicksBestTruck(t *testing.T) {
	f := newFixtures()
	d := day(2026, time.March, 10)
	f.addTruck(1, "T-01", 5000) // an order lands in the low band here
	f.addTruck(2, "T-02", 1000) // same order lands in the good band here
	seedAllocation(f, 2, d, 100, domain.AllocationPlanned)
	f.addVariant(1, 27.0)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 20})

	alloc, err := f.allocator.Allocate(context.Background(), AllocateRequest{OrderID: 100, Date: d})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if alloc.TruckID != 2 {
		t.Fatalf("auto-pick chose truck %d, want 2 (best utilization)", alloc.TruckID)
	}
}

func TestAllocateNoSuitableTruck(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 50)
	f.addVariant(1, 27.0)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 10})

	_, err := f.allocator.Allocate(context.Background(), AllocateRequest{
		OrderID: 100,
		Date:    day(2026, time.March, 10),
	})
	if !errors.Is(err, domain.ErrNoSuitableTruck) {
		t.Fatalf("err = %v, want ErrNoSuitableTruck", err)
	}
}

func TestAllocateInsufficientCapacityOnExplicitTruck(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 100)
	f.addVariant(1, 27.0)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 10})

	_, err := f.allocator.Allocate(context.Background(), AllocateRequest{
		OrderID: 100,
		TruckID: iptr(1),
		Date:    day(2026, time.March, 10),
	})

	var capErr *domain.InsufficientCapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("err = %v, want InsufficientCapacityError", err)
	}
	if capErr.RequiredKg != 270.0 || capErr.AvailableKg != 100.0 {
		t.Fatalf("error reports required=%v available=%v, want 270/100", capErr.RequiredKg, capErr.AvailableKg)
	}
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatal("capacity rejection should classify as an invalid request")
	}
}

func TestAllocateForceOverridesCapacityCheck(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 100)
	f.addVariant(1, 27.0)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 10})
	d := day(2026, time.March, 10)

	alloc, err := f.allocator.Allocate(context.Background(), AllocateRequest{
		OrderID: 100,
		TruckID: iptr(1),
		Date:    d,
		Force:   true,
	})
	if err != nil {
		t.Fatalf("forced Allocate: %v", err)
	}

	snap, err := f.capacity.Snapshot(context.Background(), 1, d)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !snap.IsOverallocated {
		t.Fatal("forced allocation should leave the truck overallocated")
	}
	if alloc.EstimatedWeightKg != 270.0 {
		t.Fatalf("estimated weight = %v, want 270.0", alloc.EstimatedWeightKg)
	}
}

func TestAllocateSwallowsAssignmentUpdateFailure(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 1000)
	f.addVariant(1, 25.0)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 2})
	f.orders.UpdateAssignmentErr = errors.New("connection reset")

	alloc, err := f.allocator.Allocate(context.Background(), AllocateRequest{
		OrderID: 100,
		TruckID: iptr(1),
		Date:    day(2026, time.March, 10),
	})
	if err != nil {
		t.Fatalf("Allocate should stand when the order update fails: %v", err)
	}

	// The primary write survives even though the order row is stale.
	if _, err := f.allocations.GetAllocation(context.Background(), alloc.AllocationID); err != nil {
		t.Fatalf("allocation row missing after swallowed secondary failure: %v", err)
	}
	order, _ := f.orders.GetOrder(context.Background(), 100)
	if order.AssignedTruckID != nil {
		t.Fatal("order assignment should have been left untouched")
	}
}

func TestRemoveDeletesAllocationAndClearsOrder(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 1000)
	f.addVariant(1, 25.0)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 2})
	d := day(2026, time.March, 10)

	alloc, err := f.allocator.Allocate(context.Background(), AllocateRequest{
		OrderID: 100,
		TruckID: iptr(1),
		Date:    d,
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if err := f.allocator.Remove(context.Background(), alloc.AllocationID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := f.allocations.GetAllocation(context.Background(), alloc.AllocationID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("allocation should be gone, got err = %v", err)
	}
	order, _ := f.orders.GetOrder(context.Background(), 100)
	if order.AssignedTruckID != nil || order.DeliveryDate != nil {
		t.Fatal("order assignment fields should be cleared")
	}
}

func TestRemoveUnknownAllocation(t *testing.T) {
	f := newFixtures()

	if err := f.allocator.Remove(context.Background(), 77); !errors.Is(err, domain.ErrAllocationNotFound) {
		t.Fatalf("err = %v, want ErrAllocationNotFound", err)
	}
}

// Concurrent allocations against one truck must never jointly pass the
// capacity check on the same headroom.
func TestAllocateConcurrentNeverOverallocates(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 500)
	f.addVariant(1, 30.0)
	d := day(2026, time.March, 10)

	// 20 orders of 90 kg each against 500 kg: at most 5 can fit.
	const orders = 20
	for i := 0; i < orders; i++ {
		f.addOrder(100+i, domain.OrderLine{ProductID: 1, Quantity: 3})
	}

	var wg sync.WaitGroup
	errs := make([]error, orders)
	for i := 0; i < orders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.allocator.Allocate(context.Background(), AllocateRequest{
				OrderID: 100 + i,
				TruckID: iptr(1),
				Date:    d,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var capErr *domain.InsufficientCapacityError
		if !errors.As(err, &capErr) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 5 {
		t.Fatalf("%d allocations succeeded, want exactly 5", succeeded)
	}

	snap, err := f.capacity.Snapshot(context.Background(), 1, d)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.IsOverallocated {
		t.Fatalf("truck overallocated under concurrency: %+v", snap)
	}
	if snap.AllocatedWeightKg != 450 {
		t.Fatalf("allocated = %v, want 450", snap.AllocatedWeightKg)
	}
}
