// Package numerator provides document auto-numbering.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service generates sequential document numbers like "SAL-2026-00042",
// one sequence per prefix and year.
//
// Numbers are allocated with a single UPSERT ... RETURNING, so concurrent
// requests never receive the same value. Allocation happens outside the
// business transaction; a later rollback leaves a gap, which is acceptable
// for receipt numbers.
type Service struct {
	querier Querier
}

// New creates a new numerator service.
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// NextNumber returns the next number for the given prefix at time at.
func (s *Service) NextNumber(ctx context.Context, prefix string, at time.Time) (string, error) {
	key := fmt.Sprintf("%s_%d", prefix, at.Year())

	sql := `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`

	var val int64
	if err := s.querier.QueryRow(ctx, sql, key).Scan(&val); err != nil {
		return "", fmt.Errorf("next number for %s: %w", key, err)
	}

	return fmt.Sprintf("%s-%d-%05d", prefix, at.Year(), val), nil
}
