package domain

import "testing"

func iptr(v int) *int { return &v }

func TestTotalCapacityKg(t *testing.T) {
	direct := &Truck{TruckID: 1, Code: "T-01", CapacityKg: fptr(1200)}
	if got := direct.TotalCapacityKg(); got != 1200 {
		t.Fatalf("direct capacity = %v, want 1200", got)
	}

	// Direct kilograms win even when a cylinder count is also set.
	both := &Truck{TruckID: 2, Code: "T-02", CapacityKg: fptr(800), CylinderCount: iptr(50)}
	if got := both.TotalCapacityKg(); got != 800 {
		t.Fatalf("capacity with both fields = %v, want 800", got)
	}

	cylinders := &Truck{TruckID: 3, Code: "T-03", CylinderCount: iptr(40)}
	if got := cylinders.TotalCapacityKg(); got != 40*DefaultCylinderWeightKg {
		t.Fatalf("cylinder capacity = %v, want %v", got, 40*DefaultCylinderWeightKg)
	}

	none := &Truck{TruckID: 4, Code: "T-04"}
	if got := none.TotalCapacityKg(); got != 0 {
		t.Fatalf("capacity with no fields = %v, want 0", got)
	}
}
