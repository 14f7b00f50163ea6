package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

// ScheduleService builds the per-day operational view of the fleet.
type ScheduleService struct {
	Trucks      ports.TruckRepository
	Orders      ports.OrderRepository
	Allocations ports.AllocationRepository
	Capacity    *CapacityService
}

func NewScheduleService(
	trucks ports.TruckRepository,
	orders ports.OrderRepository,
	allocations ports.AllocationRepository,
	capacity *CapacityService,
) *ScheduleService {
	return &ScheduleService{Trucks: trucks, Orders: orders, Allocations: allocations, Capacity: capacity}
}

// DaySchedule returns one entry per active truck for the date: the capacity
// snapshot, the non-cancelled allocations joined with their orders, and the
// derived route status. A failure on a single truck is logged and that truck
// skipped so the rest of the board still renders.
func (s *ScheduleService) DaySchedule(ctx context.Context, date time.Time) (_ []domain.ScheduleEntry, err error) {
	defer obs.Time(ctx, "schedule.DaySchedule")(&err)

	trucks, err := s.Trucks.ListActiveTrucks(ctx)
	if err != nil {
		return nil, fmt.Errorf("day schedule: list active trucks: %w", err)
	}

	entries := make([]domain.ScheduleEntry, 0, len(trucks))
	for _, t := range trucks {
		entry, err := s.truckEntry(ctx, t, date)
		if err != nil {
			log.Printf(
				"level=warn op=schedule.DaySchedule truck_id=%d msg=\"truck skipped\" err=%v",
				t.TruckID, err,
			)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *ScheduleService) truckEntry(ctx context.Context, truck *domain.Truck, date time.Time) (domain.ScheduleEntry, error) {
	snap, err := s.Capacity.SnapshotForTruck(ctx, truck, date)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}

	// Already ordered by stop sequence, unsequenced rows last.
	allocs, err := s.Allocations.ListActiveByTruckAndDate(ctx, truck.TruckID, date)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}

	stops := make([]domain.ScheduledStop, 0, len(allocs))
	for _, a := range allocs {
		order, err := s.Orders.GetOrder(ctx, a.OrderID)
		if err != nil {
			return domain.ScheduleEntry{}, fmt.Errorf("join order %d: %w", a.OrderID, err)
		}
		stops = append(stops, domain.ScheduledStop{
			Allocation:      a,
			CustomerName:    order.CustomerName,
			DeliveryAddress: order.DeliveryAddress,
			TotalAmount:     order.TotalAmount,
		})
	}

	return domain.ScheduleEntry{
		Truck:           truck,
		Capacity:        snap,
		Stops:           stops,
		AllocationCount: len(stops),
		RouteStatus:     domain.DeriveRouteStatus(allocs),
	}, nil
}
