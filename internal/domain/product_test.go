package domain

import "testing"

func fptr(v float64) *float64 { return &v }

func TestUnitWeightKgFullVariant(t *testing.T) {
	v := &ProductVariant{Variant: VariantFull, CapacityKg: fptr(12.5), TareWeightKg: fptr(14.0)}

	got, fellBack := v.UnitWeightKg()
	if fellBack {
		t.Fatal("expected no fallback for complete weight data")
	}
	if got != 26.5 {
		t.Fatalf("unit weight = %v, want 26.5", got)
	}
}

func TestUnitWeightKgEmptyVariant(t *testing.T) {
	v := &ProductVariant{Variant: VariantEmpty, CapacityKg: fptr(12.5), TareWeightKg: fptr(14.0)}

	got, fellBack := v.UnitWeightKg()
	if fellBack {
		t.Fatal("expected no fallback for complete weight data")
	}
	if got != 14.0 {
		t.Fatalf("unit weight = %v, want 14.0 (tare only)", got)
	}
}

func TestUnitWeightKgPartialData(t *testing.T) {
	// Only capacity known: use it, whatever the tag says.
	v := &ProductVariant{Variant: VariantFull, CapacityKg: fptr(19.0)}
	if got, _ := v.UnitWeightKg(); got != 19.0 {
		t.Fatalf("unit weight = %v, want 19.0", got)
	}

	// Only tare known.
	v = &ProductVariant{Variant: "damaged", TareWeightKg: fptr(15.0)}
	if got, _ := v.UnitWeightKg(); got != 15.0 {
		t.Fatalf("unit weight = %v, want 15.0", got)
	}
}

func TestUnitWeightKgNoDataFallsBack(t *testing.T) {
	v := &ProductVariant{Variant: VariantFull}

	got, fellBack := v.UnitWeightKg()
	if !fellBack {
		t.Fatal("expected fallback flag when no weight data is present")
	}
	if got != DefaultCylinderWeightKg {
		t.Fatalf("unit weight = %v, want default %v", got, DefaultCylinderWeightKg)
	}
}
