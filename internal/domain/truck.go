package domain

// DefaultCylinderWeightKg is the assumed mass of one filled mid-size
// cylinder. It converts cylinder-count capacities to kilograms and serves as
// the unit-weight fallback when a variant carries no weight data.
const DefaultCylinderWeightKg = 27.0

// Delivery truck reference data, read-only to the allocation core.
// Capacity is expressed either directly in kilograms or as a cylinder count.
type Truck struct {
	TruckID       int
	Code          string
	CapacityKg    *float64
	CylinderCount *int
	Active        bool
}

// TotalCapacityKg resolves the truck's carrying capacity to kilograms.
// A direct kilogram capacity wins over a cylinder count.
func (t *Truck) TotalCapacityKg() float64 {
	if t.CapacityKg != nil {
		return *t.CapacityKg
	}
	if t.CylinderCount != nil {
		return float64(*t.CylinderCount) * DefaultCylinderWeightKg
	}
	return 0
}
