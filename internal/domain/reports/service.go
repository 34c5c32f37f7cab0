package reports

import (
	"context"
	"fmt"
	"time"

	"karobar/internal/core/apperror"
	"karobar/internal/core/types"
	"karobar/internal/domain/expense"
)

// ExpenseAggregator is the slice of the expense domain reports depend on.
type ExpenseAggregator interface {
	TotalsByCategory(ctx context.Context, from, to time.Time) ([]expense.CategoryTotal, error)
}

// Service assembles reports from ledger and expense aggregates.
type Service struct {
	repo     Repository
	expenses ExpenseAggregator
}

// NewService creates a new reports service.
func NewService(repo Repository, expenses ExpenseAggregator) *Service {
	return &Service{repo: repo, expenses: expenses}
}

func validatePeriod(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return apperror.NewValidation("report period is required").
			WithDetail("field", "from/to")
	}
	if to.Before(from) {
		return apperror.NewValidation("period end is before its start").
			WithDetail("from", from.Format(time.DateOnly)).
			WithDetail("to", to.Format(time.DateOnly))
	}
	return nil
}

// Sales builds the sales summary for a period, optionally for one salesman.
func (s *Service) Sales(ctx context.Context, from, to time.Time, salesmanID string) (*SalesSummary, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	summary, err := s.repo.SalesSummary(ctx, from, to, salesmanID)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	summary.Period = Period{From: from, To: to}
	summary.SalesmanID = salesmanID
	return summary, nil
}

// SalesBySalesman breaks period sales down per salesman.
func (s *Service) SalesBySalesman(ctx context.Context, from, to time.Time) ([]SalesmanBreakdown, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return s.repo.SalesBySalesman(ctx, from, to)
}

// Expenses builds the expense summary for a period.
func (s *Service) Expenses(ctx context.Context, from, to time.Time) (*ExpenseSummary, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	totals, err := s.expenses.TotalsByCategory(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("expense totals: %w", err)
	}

	summary := &ExpenseSummary{
		Period:        Period{From: from, To: to},
		TotalExpenses: types.Zero(),
		ByCategory:    totals,
	}
	for _, ct := range totals {
		summary.TotalExpenses = summary.TotalExpenses.Add(ct.Total)
		summary.ExpenseCount += ct.Count
	}
	return summary, nil
}

// ProfitLoss computes revenue minus expenses for a period.
func (s *Service) ProfitLoss(ctx context.Context, from, to time.Time) (*ProfitLoss, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	sales, err := s.repo.SalesSummary(ctx, from, to, "")
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	expSummary, err := s.Expenses(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &ProfitLoss{
		Period:          Period{From: from, To: to},
		TotalRevenue:    sales.TotalRevenue,
		TotalExpenses:   expSummary.TotalExpenses,
		NetProfitOrLoss: sales.TotalRevenue.Sub(expSummary.TotalExpenses),
	}, nil
}

// WorkerActivity counts completed tasks per worker for a period.
func (s *Service) WorkerActivity(ctx context.Context, from, to time.Time) ([]WorkerActivity, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return s.repo.WorkerActivity(ctx, from, to)
}
