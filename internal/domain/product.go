package domain

// Variant tags distinguishing the physical state of a cylinder.
const (
	VariantFull  = "full"
	VariantEmpty = "empty"
)

// ProductVariant describes one physical state of a catalog item (e.g. a full
// or an empty cylinder) with its weight characteristics. Variants reference a
// parent item and are read-only to the allocation core.
type ProductVariant struct {
	ProductID       int
	ParentProductID *int
	Name            string
	Variant         string
	CapacityKg      *float64
	TareWeightKg    *float64
}

// UnitWeightKg derives the weight of a single unit of this variant.
//
// A full cylinder with complete weight data weighs tare plus content; an
// empty one weighs just the tare. With partial data the populated field is
// used (capacity first), and with no data at all the fixed default applies.
// The second return reports whether the default was substituted.
func (v *ProductVariant) UnitWeightKg() (float64, bool) {
	switch {
	case v.Variant == VariantFull && v.CapacityKg != nil && v.TareWeightKg != nil:
		return *v.TareWeightKg + *v.CapacityKg, false
	case v.Variant == VariantEmpty && v.CapacityKg != nil && v.TareWeightKg != nil:
		return *v.TareWeightKg, false
	case v.CapacityKg != nil:
		return *v.CapacityKg, false
	case v.TareWeightKg != nil:
		return *v.TareWeightKg, false
	default:
		return DefaultCylinderWeightKg, true
	}
}
