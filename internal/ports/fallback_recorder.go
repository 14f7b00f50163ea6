package ports

import (
	"context"
	"time"
)

// WeightFallbackEvent records that the weight calculator substituted a
// default unit weight, or skipped a line entirely, because catalog data was
// missing. Persisting these keeps silent fallbacks queryable.
type WeightFallbackEvent struct {
	OrderID      int
	ProductID    int
	Reason       string
	UnitWeightKg float64
	OccurredAt   time.Time
}

// Port: a sink for weight fallback events.
type FallbackRecorder interface {
	RecordWeightFallback(ctx context.Context, ev WeightFallbackEvent) error
}
