// Package expense_repo provides the PostgreSQL expense repository.
package expense_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/domain"
	"karobar/internal/domain/expense"
	"karobar/internal/infrastructure/storage/postgres"
)

// ExpenseRepo is the PostgreSQL expense repository.
type ExpenseRepo struct {
	txManager *postgres.TxManager
}

var expenseCols = postgres.ExtractDBColumns[expense.Expense]()

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txManager *postgres.TxManager) *ExpenseRepo {
	return &ExpenseRepo{txManager: txManager}
}

var _ expense.Repository = (*ExpenseRepo)(nil)

func (r *ExpenseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts an expense record.
func (r *ExpenseRepo) Create(ctx context.Context, e *expense.Expense) error {
	data := postgres.StructToMap(e)

	filteredData := make(map[string]any, len(expenseCols))
	for _, col := range expenseCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert("expenses").
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert expenses: %w", err)
	}
	return nil
}

// GetByID retrieves an expense.
func (r *ExpenseRepo) GetByID(ctx context.Context, expenseID id.ID) (*expense.Expense, error) {
	sql, args, err := r.builder().
		Select(expenseCols...).
		From("expenses").
		Where(squirrel.Eq{"id": expenseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	e := &expense.Expense{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("expenses", expenseID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return e, nil
}

// Update modifies an expense with optimistic locking.
func (r *ExpenseRepo) Update(ctx context.Context, e *expense.Expense) error {
	data := postgres.StructToMap(e)

	filteredData := make(map[string]any, len(expenseCols))
	for _, col := range expenseCols {
		if col == "id" || col == "version" || col == "created_at" || col == "created_by" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Update("expenses").
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": e.ID}).
		Where(squirrel.Eq{"version": e.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update expenses: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("expenses", e.ID)
	}
	return nil
}

// Delete removes an expense record.
func (r *ExpenseRepo) Delete(ctx context.Context, expenseID id.ID) error {
	sql, args, err := r.builder().
		Delete("expenses").
		Where(squirrel.Eq{"id": expenseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("expenses", expenseID.String())
	}
	return nil
}

// List retrieves expenses with filtering.
func (r *ExpenseRepo) List(ctx context.Context, filter expense.ListFilter) (domain.ListResult[*expense.Expense], error) {
	result := domain.ListResult[*expense.Expense]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(expenseCols...).
		From("expenses")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("date DESC, created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}
	return result, nil
}

// TotalsByCategory aggregates spend per category in [from, to].
func (r *ExpenseRepo) TotalsByCategory(ctx context.Context, from, to time.Time) ([]expense.CategoryTotal, error) {
	sql, args, err := r.builder().
		Select(
			"category",
			"COALESCE(SUM(amount), 0) AS total",
			"COUNT(*) AS count",
		).
		From("expenses").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		GroupBy("category").
		OrderBy("total DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var totals []expense.CategoryTotal
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &totals, sql, args...); err != nil {
		return nil, fmt.Errorf("totals by category: %w", err)
	}
	return totals, nil
}
