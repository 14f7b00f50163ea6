package services

import (
	"context"
	"testing"
	"time"

	"fleet-allocation-service/internal/domain"
)

func TestReconcileRepairsMissingAssignment(t *testing.T) {
	f := newFixtures()
	d := day(2026, time.March, 10)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 1})

	// An allocation exists but the order's assignment fields were never
	// written (the secondary write failed and was swallowed).
	if _, err := f.allocations.InsertAllocation(context.Background(), &domain.TruckAllocation{
		TruckID:           3,
		OrderID:           100,
		Date:              d,
		EstimatedWeightKg: 50,
		Status:            domain.AllocationPlanned,
		CreatedAt:         time.Now(),
	}); err != nil {
		t.Fatalf("InsertAllocation: %v", err)
	}

	report, err := f.reconciler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Repaired != 1 || report.Cleared != 0 {
		t.Fatalf("report = %+v, want one repair", report)
	}

	order, _ := f.orders.GetOrder(context.Background(), 100)
	if order.AssignedTruckID == nil || *order.AssignedTruckID != 3 {
		t.Fatalf("order truck = %v, want 3", order.AssignedTruckID)
	}
	if order.DeliveryDate == nil || !domain.SameDay(*order.DeliveryDate, d) {
		t.Fatalf("order date = %v, want %v", order.DeliveryDate, d)
	}
}

func TestReconcileClearsDanglingAssignment(t *testing.T) {
	f := newFixtures()
	d := day(2026, time.March, 10)

	// The order claims a truck but no active allocation backs it (the clear
	// after a removal failed and was swallowed).
	f.orders.AddOrder(&domain.Order{
		OrderID:         100,
		AssignedTruckID: iptr(3),
		DeliveryDate:    &d,
	})

	report, err := f.reconciler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Cleared != 1 || report.Repaired != 0 {
		t.Fatalf("report = %+v, want one clear", report)
	}

	order, _ := f.orders.GetOrder(context.Background(), 100)
	if order.AssignedTruckID != nil || order.DeliveryDate != nil {
		t.Fatal("dangling assignment should be cleared")
	}
}

func TestReconcileLeavesConsistentStateAlone(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 1000)
	f.addVariant(1, 25.0)
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 2})

	if _, err := f.allocator.Allocate(context.Background(), AllocateRequest{
		OrderID: 100,
		TruckID: iptr(1),
		Date:    day(2026, time.March, 10),
	}); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	report, err := f.reconciler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Repaired != 0 || report.Cleared != 0 {
		t.Fatalf("report = %+v, want no changes on consistent state", report)
	}
	if report.Checked != 1 {
		t.Fatalf("checked = %d, want 1", report.Checked)
	}
}

func TestReconcileNewestAllocationWins(t *testing.T) {
	f := newFixtures()
	f.addOrder(100, domain.OrderLine{ProductID: 1, Quantity: 1})
	d1 := day(2026, time.March, 10)
	d2 := day(2026, time.March, 12)

	older := &domain.TruckAllocation{
		TruckID: 1, OrderID: 100, Date: d1, EstimatedWeightKg: 50,
		Status: domain.AllocationPlanned, CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &domain.TruckAllocation{
		TruckID: 2, OrderID: 100, Date: d2, EstimatedWeightKg: 50,
		Status: domain.AllocationPlanned, CreatedAt: time.Now(),
	}
	for _, a := range []*domain.TruckAllocation{older, newer} {
		if _, err := f.allocations.InsertAllocation(context.Background(), a); err != nil {
			t.Fatalf("InsertAllocation: %v", err)
		}
	}

	if _, err := f.reconciler.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	order, _ := f.orders.GetOrder(context.Background(), 100)
	if order.AssignedTruckID == nil || *order.AssignedTruckID != 2 {
		t.Fatalf("order truck = %v, want 2 (newest allocation)", order.AssignedTruckID)
	}
	if order.DeliveryDate == nil || !domain.SameDay(*order.DeliveryDate, d2) {
		t.Fatalf("order date = %v, want %v", order.DeliveryDate, d2)
	}
}

func TestReconcileSkipsAllocationWithMissingOrder(t *testing.T) {
	f := newFixtures()

	if _, err := f.allocations.InsertAllocation(context.Background(), &domain.TruckAllocation{
		TruckID: 1, OrderID: 999, Date: day(2026, time.March, 10),
		Status: domain.AllocationPlanned, CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("InsertAllocation: %v", err)
	}

	report, err := f.reconciler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run should tolerate an orphan allocation: %v", err)
	}
	if report.Repaired != 0 || report.Cleared != 0 {
		t.Fatalf("report = %+v, want no changes", report)
	}
}

func TestReconcileCancelledAllocationDoesNotBackAssignment(t *testing.T) {
	f := newFixtures()
	d := day(2026, time.March, 10)
	f.orders.AddOrder(&domain.Order{
		OrderID:         100,
		AssignedTruckID: iptr(1),
		DeliveryDate:    &d,
	})

	created, err := f.allocations.InsertAllocation(context.Background(), &domain.TruckAllocation{
		TruckID: 1, OrderID: 100, Date: d, EstimatedWeightKg: 50,
		Status: domain.AllocationPlanned, CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("InsertAllocation: %v", err)
	}
	f.allocations.SetStatus(created.AllocationID, domain.AllocationCancelled)

	report, err := f.reconciler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Cleared != 1 {
		t.Fatalf("report = %+v, want the assignment cleared (cancelled allocation does not count)", report)
	}
}
