package domain

import "github.com/shopspring/decimal"

// RouteStatus is the operational state of a truck's day, derived from the
// statuses of its allocations.
type RouteStatus string

const (
	RouteUnassigned RouteStatus = "unassigned"
	RoutePlanned    RouteStatus = "planned"
	RouteInProgress RouteStatus = "in_progress"
	RouteCompleted  RouteStatus = "completed"
	RouteMixed      RouteStatus = "mixed"
)

// DeriveRouteStatus collapses allocation statuses into a route status.
// First match wins: all delivered → completed, any loaded → in_progress,
// all planned → planned, otherwise mixed. No allocations → unassigned.
func DeriveRouteStatus(allocs []*TruckAllocation) RouteStatus {
	if len(allocs) == 0 {
		return RouteUnassigned
	}

	allDelivered := true
	allPlanned := true
	anyLoaded := false
	for _, a := range allocs {
		if a.Status != AllocationDelivered {
			allDelivered = false
		}
		if a.Status != AllocationPlanned {
			allPlanned = false
		}
		if a.Status == AllocationLoaded {
			anyLoaded = true
		}
	}

	switch {
	case allDelivered:
		return RouteCompleted
	case anyLoaded:
		return RouteInProgress
	case allPlanned:
		return RoutePlanned
	default:
		return RouteMixed
	}
}

// ScheduledStop joins one allocation with display fields from its order.
type ScheduledStop struct {
	Allocation      *TruckAllocation
	CustomerName    string
	DeliveryAddress string
	TotalAmount     decimal.Decimal
}

// ScheduleEntry is the per-truck view of one day's allocations, ordered by
// stop sequence with unsequenced stops last.
type ScheduleEntry struct {
	Truck           *Truck
	Capacity        CapacitySnapshot
	Stops           []ScheduledStop
	AllocationCount int
	RouteStatus     RouteStatus
}
