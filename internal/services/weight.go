package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

// WeightService derives an order's total physical weight from its line items
// and the weight data on the referenced product variants.
type WeightService struct {
	Orders   ports.OrderRepository
	Products ports.ProductRepository
	Fallback ports.FallbackRecorder // optional; nil disables event recording
}

func NewWeightService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	fallback ports.FallbackRecorder,
) *WeightService {
	return &WeightService{Orders: orders, Products: products, Fallback: fallback}
}

// OrderWeightKg returns the order's total weight in kilograms.
func (s *WeightService) OrderWeightKg(ctx context.Context, orderID int) (_ float64, err error) {
	defer obs.Time(ctx, "weight.OrderWeightKg")(&err)

	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("order weight: get order %d: %w", orderID, err)
	}

	return s.OrderWeight(ctx, order)
}

// OrderWeight computes the total weight for an already-loaded order.
//
// Lines whose product cannot be resolved are skipped rather than failed, and
// variants with no weight data fall back to the fixed default unit weight.
// Both cases are logged at warning level and recorded as fallback events so
// stale catalog data stays discoverable. Storage faults are hard failures.
func (s *WeightService) OrderWeight(ctx context.Context, order *domain.Order) (float64, error) {
	total := 0.0
	for _, line := range order.Lines {
		variant, err := s.Products.GetVariant(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Printf(
					"level=warn op=weight.OrderWeight order_id=%d product_id=%d msg=\"line skipped, product not resolvable\"",
					order.OrderID, line.ProductID,
				)
				s.recordFallback(ctx, order.OrderID, line.ProductID, "product not resolvable, line skipped", 0)
				continue
			}
			return 0, fmt.Errorf("order weight: resolve product %d: %w", line.ProductID, err)
		}

		unit, fellBack := variant.UnitWeightKg()
		if fellBack {
			log.Printf(
				"level=warn op=weight.OrderWeight order_id=%d product_id=%d unit_kg=%.2f msg=\"no weight data, default applied\"",
				order.OrderID, line.ProductID, unit,
			)
			s.recordFallback(ctx, order.OrderID, line.ProductID, "no weight data, default unit weight applied", unit)
		}

		total += float64(line.Quantity) * unit
	}

	return total, nil
}

// recordFallback persists a catalog-gap event. Recording is best effort: a
// sink failure is logged and never fails the weight computation.
func (s *WeightService) recordFallback(ctx context.Context, orderID, productID int, reason string, unitKg float64) {
	if s.Fallback == nil {
		return
	}

	ev := ports.WeightFallbackEvent{
		OrderID:      orderID,
		ProductID:    productID,
		Reason:       reason,
		UnitWeightKg: unitKg,
		OccurredAt:   time.Now(),
	}
	if err := s.Fallback.RecordWeightFallback(ctx, ev); err != nil {
		log.Printf("op=weight.recordFallback order_id=%d product_id=%d err=%v", orderID, productID, err)
	}
}
