package domain

import "testing"

func allocsWithStatuses(statuses ...AllocationStatus) []*TruckAllocation {
	out := make([]*TruckAllocation, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, &TruckAllocation{AllocationID: i + 1, Status: s})
	}
	return out
}

func TestDeriveRouteStatus(t *testing.T) {
	cases := []struct {
		name     string
		statuses []AllocationStatus
		want     RouteStatus
	}{
		{"no allocations", nil, RouteUnassigned},
		{"all delivered", []AllocationStatus{AllocationDelivered, AllocationDelivered}, RouteCompleted},
		{"any loaded", []AllocationStatus{AllocationPlanned, AllocationLoaded}, RouteInProgress},
		{"loaded beats partial delivery", []AllocationStatus{AllocationDelivered, AllocationLoaded}, RouteInProgress},
		{"all planned", []AllocationStatus{AllocationPlanned, AllocationPlanned}, RoutePlanned},
		{"planned and delivered", []AllocationStatus{AllocationPlanned, AllocationDelivered}, RouteMixed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveRouteStatus(allocsWithStatuses(tc.statuses...)); got != tc.want {
				t.Fatalf("route status = %q, want %q", got, tc.want)
			}
		})
	}
}
