package services

import (
	"time"

	"fleet-allocation-service/internal/adapters/repositories/memory"
	"fleet-allocation-service/internal/domain"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixtures bundles the in-memory adapters and the full service graph wired
// over them, mirroring the production composition root.
type fixtures struct {
	trucks      *memory.TruckRepository
	orders      *memory.OrderRepository
	products    *memory.ProductRepository
	allocations *memory.AllocationRepository
	inventory   *memory.InventoryRepository
	fallbacks   *memory.FallbackRecorder

	weight     *WeightService
	capacity   *CapacityService
	scorer     *ScoreService
	allocator  *AllocationService
	schedule   *ScheduleService
	reserver   *ReservationService
	reconciler *Reconciler
}

func newFixtures() *fixtures {
	f := &fixtures{
		trucks:      memory.NewTruckRepository(),
		orders:      memory.NewOrderRepository(),
		products:    memory.NewProductRepository(),
		allocations: memory.NewAllocationRepository(),
		inventory:   memory.NewInventoryRepository(),
		fallbacks:   memory.NewFallbackRecorder(),
	}

	f.weight = NewWeightService(f.orders, f.products, f.fallbacks)
	f.capacity = NewCapacityService(f.trucks, f.allocations)
	f.scorer = NewScoreService(f.trucks, f.capacity)
	f.allocator = NewAllocationService(f.orders, f.trucks, f.allocations, f.weight, f.scorer, f.capacity)
	f.schedule = NewScheduleService(f.trucks, f.orders, f.allocations, f.capacity)
	f.reserver = NewReservationService(f.inventory)
	f.reconciler = NewReconciler(f.orders, f.allocations)
	return f
}

func (f *fixtures) addTruck(id int, code string, capacityKg float64) {
	f.trucks.AddTruck(&domain.Truck{
		TruckID:    id,
		Code:       code,
		CapacityKg: fptr(capacityKg),
		Active:     true,
	})
}

// addVariant registers a variant with a known unit weight (capacity only, so
// the weight resolves to exactly unitKg regardless of the variant tag).
func (f *fixtures) addVariant(id int, unitKg float64) {
	f.products.AddVariant(&domain.ProductVariant{
		ProductID:  id,
		Name:       "LPG cylinder",
		Variant:    domain.VariantFull,
		CapacityKg: fptr(unitKg),
	})
}

func (f *fixtures) addOrder(id int, lines ...domain.OrderLine) {
	f.orders.AddOrder(&domain.Order{
		OrderID:         id,
		CustomerName:    "Test Customer",
		DeliveryAddress: "12 Test Street",
		Lines:           lines,
	})
}
