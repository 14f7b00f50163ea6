package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

// Reconciler repairs drift between TruckAllocation rows (the source of truth
// for bindings) and the denormalized assignment fields on orders. Drift
// accumulates whenever the secondary write of an allocate or remove fails and
// is swallowed; this pass detects and repairs it after the fact.
type Reconciler struct {
	Orders      ports.OrderRepository
	Allocations ports.AllocationRepository
}

func NewReconciler(orders ports.OrderRepository, allocations ports.AllocationRepository) *Reconciler {
	return &Reconciler{Orders: orders, Allocations: allocations}
}

// ReconcileReport summarizes what one pass changed.
type ReconcileReport struct {
	Checked  int // orders examined
	Repaired int // assignment fields rewritten from an allocation
	Cleared  int // assignments cleared for lack of a backing allocation
}

// Run walks all non-cancelled allocations and all assigned orders in two
// passes: orders backed by an allocation get stale fields rewritten, and
// assigned orders with no backing allocation get cleared. When an order has
// several active allocations the newest one is treated as authoritative.
func (r *Reconciler) Run(ctx context.Context) (_ ReconcileReport, err error) {
	defer obs.Time(ctx, "reconcile.Run")(&err)

	var report ReconcileReport

	allocs, err := r.Allocations.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("reconcile: list active allocations: %w", err)
	}

	byOrder := make(map[int]*domain.TruckAllocation, len(allocs))
	for _, a := range allocs {
		if cur, ok := byOrder[a.OrderID]; !ok || a.CreatedAt.After(cur.CreatedAt) {
			byOrder[a.OrderID] = a
		}
	}

	for orderID, a := range byOrder {
		order, err := r.Orders.GetOrder(ctx, orderID)
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf(
				"level=warn op=reconcile.Run allocation_id=%d order_id=%d msg=\"allocation references missing order\"",
				a.AllocationID, orderID,
			)
			continue
		}
		if err != nil {
			return report, fmt.Errorf("reconcile: get order %d: %w", orderID, err)
		}

		report.Checked++
		if assignmentMatches(order, a) {
			continue
		}

		truckID := a.TruckID
		date := a.Date
		if err := r.Orders.UpdateAssignment(ctx, orderID, &truckID, &date); err != nil {
			return report, fmt.Errorf("reconcile: repair order %d: %w", orderID, err)
		}
		report.Repaired++
		log.Printf(
			"op=reconcile.Run order_id=%d truck_id=%d msg=\"assignment fields repaired from allocation\"",
			orderID, a.TruckID,
		)
	}

	assigned, err := r.Orders.ListAssignedOrders(ctx)
	if err != nil {
		return report, fmt.Errorf("reconcile: list assigned orders: %w", err)
	}

	for _, o := range assigned {
		if _, ok := byOrder[o.OrderID]; ok {
			continue
		}

		report.Checked++
		if err := r.Orders.UpdateAssignment(ctx, o.OrderID, nil, nil); err != nil {
			return report, fmt.Errorf("reconcile: clear order %d: %w", o.OrderID, err)
		}
		report.Cleared++
		log.Printf("op=reconcile.Run order_id=%d msg=\"dangling assignment cleared\"", o.OrderID)
	}

	return report, nil
}

func assignmentMatches(order *domain.Order, a *domain.TruckAllocation) bool {
	return order.AssignedTruckID != nil &&
		*order.AssignedTruckID == a.TruckID &&
		order.DeliveryDate != nil &&
		domain.SameDay(*order.DeliveryDate, a.Date)
}
