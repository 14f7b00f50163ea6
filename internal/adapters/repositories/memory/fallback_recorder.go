package memory

import (
	"context"
	"sync"

	"fleet-allocation-service/internal/ports"
)

// FallbackRecorder collects weight fallback events in memory.
type FallbackRecorder struct {
	mu     sync.Mutex
	events []ports.WeightFallbackEvent
}

var _ ports.FallbackRecorder = (*FallbackRecorder)(nil)

func NewFallbackRecorder() *FallbackRecorder {
	return &FallbackRecorder{}
}

func (r *FallbackRecorder) RecordWeightFallback(_ context.Context, ev ports.WeightFallbackEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *FallbackRecorder) Events() []ports.WeightFallbackEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.WeightFallbackEvent(nil), r.events...)
}
