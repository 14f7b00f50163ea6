package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

// Score anchors and bonuses. Post-assignment utilization above 95% earns no
// bonus at all: that gap is deliberate headroom discouragement, kept as
// confirmed policy rather than smoothed over.
const (
	scoreSufficient     = 50
	scoreInsufficient   = -10
	scoreOverallocation = -20

	bonusUtilizationGood = 30 // post-assignment utilization in [60, 85]
	bonusUtilizationHigh = 20 // post-assignment utilization in (85, 95]
	bonusUtilizationLow  = 10 // post-assignment utilization in [0, 60)

	bonusFewOrders  = 15 // at most 3 active orders
	bonusSomeOrders = 10 // at most 6 active orders
	bonusManyOrders = 5
)

// ScoreService ranks every active truck for a candidate order weight.
type ScoreService struct {
	Trucks   ports.TruckRepository
	Capacity *CapacityService
}

func NewScoreService(trucks ports.TruckRepository, capacity *CapacityService) *ScoreService {
	return &ScoreService{Trucks: trucks, Capacity: capacity}
}

// RankTrucks scores all active trucks for an order of the given weight on the
// given date and returns the full list sorted by score descending. The sort
// is stable, so equal scores keep the fetch order (ascending display code).
// Callers treat score > 0 as the usable threshold.
func (s *ScoreService) RankTrucks(ctx context.Context, weightKg float64, date time.Time) (_ []domain.TruckScore, err error) {
	defer obs.Time(ctx, "score.RankTrucks")(&err)

	trucks, err := s.Trucks.ListActiveTrucks(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank trucks: list active trucks: %w", err)
	}

	scores := make([]domain.TruckScore, 0, len(trucks))
	for _, t := range trucks {
		snap, err := s.Capacity.SnapshotForTruck(ctx, t, date)
		if err != nil {
			return nil, fmt.Errorf("rank trucks: snapshot truck %d: %w", t.TruckID, err)
		}
		scores = append(scores, scoreTruck(t, snap, weightKg))
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	return scores, nil
}

func scoreTruck(t *domain.Truck, snap domain.CapacitySnapshot, weightKg float64) domain.TruckScore {
	ts := domain.TruckScore{Truck: t, Capacity: snap}

	if snap.AvailableCapacityKg < weightKg {
		ts.Score = scoreInsufficient
		ts.Reasons = append(ts.Reasons, "insufficient capacity")
		if snap.IsOverallocated {
			ts.Score += scoreOverallocation
			ts.Reasons = append(ts.Reasons, "already overallocated")
		}
		return ts
	}

	ts.Score = scoreSufficient
	ts.Reasons = append(ts.Reasons, "has sufficient capacity")

	postUtil := 0.0
	if snap.TotalCapacityKg > 0 {
		postUtil = (snap.AllocatedWeightKg + weightKg) / snap.TotalCapacityKg * 100
	}
	switch {
	case postUtil >= 60 && postUtil <= 85:
		ts.Score += bonusUtilizationGood
		ts.Reasons = append(ts.Reasons, fmt.Sprintf("good utilization after assignment (%.1f%%)", postUtil))
	case postUtil > 85 && postUtil <= 95:
		ts.Score += bonusUtilizationHigh
		ts.Reasons = append(ts.Reasons, fmt.Sprintf("high utilization after assignment (%.1f%%)", postUtil))
	case postUtil < 60:
		ts.Score += bonusUtilizationLow
		ts.Reasons = append(ts.Reasons, fmt.Sprintf("low utilization after assignment (%.1f%%)", postUtil))
	default:
		// Above 95%: no bonus, by policy.
		ts.Reasons = append(ts.Reasons, fmt.Sprintf("near-full utilization after assignment (%.1f%%)", postUtil))
	}

	switch {
	case snap.ActiveOrderCount <= 3:
		ts.Score += bonusFewOrders
		ts.Reasons = append(ts.Reasons, fmt.Sprintf("light order load (%d orders)", snap.ActiveOrderCount))
	case snap.ActiveOrderCount <= 6:
		ts.Score += bonusSomeOrders
		ts.Reasons = append(ts.Reasons, fmt.Sprintf("moderate order load (%d orders)", snap.ActiveOrderCount))
	default:
		ts.Score += bonusManyOrders
		ts.Reasons = append(ts.Reasons, fmt.Sprintf("heavy order load (%d orders)", snap.ActiveOrderCount))
	}

	return ts
}
