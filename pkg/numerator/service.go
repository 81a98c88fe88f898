// Package numerator issues sequential document numbers of the form
// PREFIX-YYYY-00001. Sequences are scoped by prefix and year and stored
// in the sys_sequences table, incremented atomically.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the minimal query surface needed by the numerator.
// Both pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service issues document numbers.
type Service struct {
	db Querier
}

// New creates a numerator backed by db.
func New(db Querier) *Service {
	return &Service{db: db}
}

// Next returns the next number for the given prefix, e.g. "QT-2026-00001".
// The counter resets each calendar year. Must be called inside the same
// transaction as the document insert so gaps only appear on rollback.
func (s *Service) Next(ctx context.Context, prefix string) (string, error) {
	return s.NextAt(ctx, prefix, time.Now())
}

// NextAt is Next with an explicit reference time, used by tests.
func (s *Service) NextAt(ctx context.Context, prefix string, at time.Time) (string, error) {
	year := at.Year()
	scope := fmt.Sprintf("%s-%d", prefix, year)

	var value int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO sys_sequences (scope, value)
		VALUES ($1, 1)
		ON CONFLICT (scope)
		DO UPDATE SET value = sys_sequences.value + 1
		RETURNING value`, scope).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("numerator: next %s: %w", scope, err)
	}

	return Format(prefix, year, value), nil
}

// Format renders a document number from its parts.
func Format(prefix string, year int, value int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, value)
}
