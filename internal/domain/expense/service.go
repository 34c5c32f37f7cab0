package expense

import (
	"context"
	"fmt"
	"time"

	"karobar/internal/core/id"
	"karobar/internal/core/tx"
	"karobar/internal/domain"
	"karobar/internal/domain/audit"
	"karobar/pkg/logger"
)

// Service provides business operations for expense tracking.
type Service struct {
	repo      Repository
	audit     audit.Recorder
	txManager tx.Manager
}

// NewService creates a new expense service.
func NewService(repo Repository, auditRec audit.Recorder, txManager tx.Manager) *Service {
	return &Service{repo: repo, audit: auditRec, txManager: txManager}
}

// Create records a new expense. The row and its audit entry commit together.
func (s *Service) Create(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create expense: %w", err)
		}

		if err := s.audit.RecordChange(ctx, "expense", e.ID, audit.ActionCreate, map[string]any{
			"title":    e.Title,
			"category": string(e.Category),
			"amount":   e.Amount.String(),
		}); err != nil {
			return fmt.Errorf("record audit: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "expense recorded", "id", e.ID, "category", e.Category, "amount", e.Amount)
	return nil
}

// GetByID retrieves an expense.
func (s *Service) GetByID(ctx context.Context, expenseID id.ID) (*Expense, error) {
	return s.repo.GetByID(ctx, expenseID)
}

// Update modifies an existing expense.
func (s *Service) Update(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update expense: %w", err)
		}

		return s.audit.RecordChange(ctx, "expense", e.ID, audit.ActionUpdate, map[string]any{
			"title":  e.Title,
			"amount": e.Amount.String(),
		})
	})
}

// Delete removes an expense record.
func (s *Service) Delete(ctx context.Context, expenseID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, expenseID); err != nil {
			return err
		}
		return s.audit.RecordChange(ctx, "expense", expenseID, audit.ActionDelete, nil)
	})
}

// List retrieves expenses with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Expense], error) {
	return s.repo.List(ctx, filter)
}

// TotalsByCategory aggregates spend per category in [from, to].
func (s *Service) TotalsByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error) {
	return s.repo.TotalsByCategory(ctx, from, to)
}
