package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-allocation-service/internal/ports"
)

// SQLFallbackRecorder persists weight fallback events so catalog gaps are
// queryable after the fact, not just visible in logs.
type SQLFallbackRecorder struct{ DB *sql.DB }

var _ ports.FallbackRecorder = (*SQLFallbackRecorder)(nil)

func NewSQLFallbackRecorder(db *sql.DB) *SQLFallbackRecorder {
	return &SQLFallbackRecorder{DB: db}
}

func (s *SQLFallbackRecorder) RecordWeightFallback(ctx context.Context, ev ports.WeightFallbackEvent) error {
	if s.DB == nil {
		return errors.New("fallback recorder: DB is nil")
	}

	q := `
	INSERT INTO weight_fallback_events (order_id, product_id, reason, unit_weight_kg, occurred_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := s.DB.ExecContext(ctx, q, ev.OrderID, ev.ProductID, ev.Reason, ev.UnitWeightKg, ev.OccurredAt); err != nil {
		return fmt.Errorf("record weight fallback order=%d product=%d: %w", ev.OrderID, ev.ProductID, err)
	}
	return nil
}
