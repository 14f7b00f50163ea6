package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet-allocation-service/internal/domain"
)

func seedAllocation(f *fixtures, truckID int, date time.Time, weightKg float64, status domain.AllocationStatus) *domain.TruckAllocation {
	created, err := f.allocations.InsertAllocation(context.Background(), &domain.TruckAllocation{
		TruckID:           truckID,
		OrderID:           truckID*1000 + int(weightKg),
		Date:              date,
		EstimatedWeightKg: weightKg,
		Status:            status,
		CreatedAt:         time.Now(),
	})
	if err != nil {
		panic(err)
	}
	return created
}

func TestSnapshotSumsActiveAllocations(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 1000)
	d := day(2026, time.March, 10)
	seedAllocation(f, 1, d, 250, domain.AllocationPlanned)
	seedAllocation(f, 1, d, 150, domain.AllocationLoaded)
	seedAllocation(f, 1, d, 400, domain.AllocationCancelled)
	seedAllocation(f, 1, day(2026, time.March, 11), 500, domain.AllocationPlanned)

	snap, err := f.capacity.Snapshot(context.Background(), 1, d)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if snap.AllocatedWeightKg != 400 {
		t.Fatalf("allocated = %v, want 400 (cancelled and other-day excluded)", snap.AllocatedWeightKg)
	}
	if snap.AvailableCapacityKg != 600 {
		t.Fatalf("available = %v, want 600", snap.AvailableCapacityKg)
	}
	if snap.UtilizationPercent != 40.0 {
		t.Fatalf("utilization = %v, want 40.0", snap.UtilizationPercent)
	}
	if snap.ActiveOrderCount != 2 {
		t.Fatalf("active orders = %d, want 2", snap.ActiveOrderCount)
	}
	if snap.IsOverallocated {
		t.Fatal("truck at 40% should not be overallocated")
	}
}

func TestSnapshotOverallocationGoesNegative(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 500)
	d := day(2026, time.March, 10)
	seedAllocation(f, 1, d, 700, domain.AllocationPlanned)

	snap, err := f.capacity.Snapshot(context.Background(), 1, d)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.AvailableCapacityKg != -200 {
		t.Fatalf("available = %v, want -200", snap.AvailableCapacityKg)
	}
	if !snap.IsOverallocated {
		t.Fatal("expected overallocation flag")
	}
	if snap.UtilizationPercent != 140.0 {
		t.Fatalf("utilization = %v, want 140.0", snap.UtilizationPercent)
	}
}

func TestSnapshotZeroCapacityTruck(t *testing.T) {
	f := newFixtures()
	f.trucks.AddTruck(&domain.Truck{TruckID: 1, Code: "T-01", Active: true})
	d := day(2026, time.March, 10)
	seedAllocation(f, 1, d, 100, domain.AllocationPlanned)

	snap, err := f.capacity.Snapshot(context.Background(), 1, d)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.UtilizationPercent != 0 {
		t.Fatalf("utilization = %v, want 0 for zero-capacity truck", snap.UtilizationPercent)
	}
	if !snap.IsOverallocated {
		t.Fatal("any load on a zero-capacity truck is overallocation")
	}
}

func TestSnapshotCylinderCountCapacity(t *testing.T) {
	f := newFixtures()
	f.trucks.AddTruck(&domain.Truck{TruckID: 1, Code: "T-01", CylinderCount: iptr(40), Active: true})

	snap, err := f.capacity.Snapshot(context.Background(), 1, day(2026, time.March, 10))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TotalCapacityKg != 40*domain.DefaultCylinderWeightKg {
		t.Fatalf("total = %v, want %v", snap.TotalCapacityKg, 40*domain.DefaultCylinderWeightKg)
	}
}

func TestSnapshotUnknownTruck(t *testing.T) {
	f := newFixtures()

	_, err := f.capacity.Snapshot(context.Background(), 9, day(2026, time.March, 10))
	if !errors.Is(err, domain.ErrTruckNotFound) {
		t.Fatalf("err = %v, want ErrTruckNotFound", err)
	}
}

func TestSnapshotUtilizationRounding(t *testing.T) {
	f := newFixtures()
	f.addTruck(1, "T-01", 300)
	d := day(2026, time.March, 10)
	seedAllocation(f, 1, d, 100, domain.AllocationPlanned)

	snap, err := f.capacity.Snapshot(context.Background(), 1, d)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	// 100/300 = 33.333...%, reported to two decimals.
	if snap.UtilizationPercent != 33.33 {
		t.Fatalf("utilization = %v, want 33.33", snap.UtilizationPercent)
	}
}
