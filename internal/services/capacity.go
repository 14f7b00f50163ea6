package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

// CapacityService computes per-truck, per-date load snapshots.
type CapacityService struct {
	Trucks      ports.TruckRepository
	Allocations ports.AllocationRepository
}

func NewCapacityService(trucks ports.TruckRepository, allocations ports.AllocationRepository) *CapacityService {
	return &CapacityService{Trucks: trucks, Allocations: allocations}
}

// Snapshot returns the truck's load picture for the date. A missing truck is
// domain.ErrTruckNotFound, distinct from a storage fault.
func (s *CapacityService) Snapshot(ctx context.Context, truckID int, date time.Time) (_ domain.CapacitySnapshot, err error) {
	defer obs.Time(ctx, "capacity.Snapshot")(&err)

	truck, err := s.Trucks.GetTruck(ctx, truckID)
	if err != nil {
		return domain.CapacitySnapshot{}, fmt.Errorf("capacity snapshot: %w", err)
	}

	return s.SnapshotForTruck(ctx, truck, date)
}

// SnapshotForTruck computes the snapshot for an already-fetched truck.
// Cancelled allocations never count toward the allocated weight; available
// capacity is signed and goes negative on overallocation.
func (s *CapacityService) SnapshotForTruck(ctx context.Context, truck *domain.Truck, date time.Time) (domain.CapacitySnapshot, error) {
	allocs, err := s.Allocations.ListActiveByTruckAndDate(ctx, truck.TruckID, date)
	if err != nil {
		return domain.CapacitySnapshot{}, fmt.Errorf(
			"capacity snapshot: list allocations truck=%d: %w", truck.TruckID, err,
		)
	}

	total := truck.TotalCapacityKg()

	allocated := 0.0
	for _, a := range allocs {
		allocated += a.EstimatedWeightKg
	}

	// Guard the zero-capacity division; utilization is reported to 2 decimals.
	utilization := 0.0
	if total > 0 {
		utilization = math.Round(allocated/total*100*100) / 100
	}

	return domain.CapacitySnapshot{
		TruckID:             truck.TruckID,
		TruckCode:           truck.Code,
		Date:                date,
		TotalCapacityKg:     total,
		AllocatedWeightKg:   allocated,
		AvailableCapacityKg: total - allocated,
		UtilizationPercent:  utilization,
		ActiveOrderCount:    len(allocs),
		IsOverallocated:     allocated > total,
	}, nil
}
