// Package report_repo provides the PostgreSQL report repository.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"karobar/internal/domain/reports"
	"karobar/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository with aggregate SQL over the
// sales and task history tables.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ reports.Repository = (*ReportRepo)(nil)

// SalesSummary sums sales in [from, to], optionally for one salesman.
func (r *ReportRepo) SalesSummary(ctx context.Context, from, to time.Time, salesmanID string) (*reports.SalesSummary, error) {
	q := r.builder.
		Select(
			"COUNT(*) AS sale_count",
			"COALESCE(SUM(total_amount), 0) AS total_revenue",
			"COALESCE(SUM(discount), 0) AS total_discount",
			"COALESCE(SUM(paid_amount), 0) AS total_paid",
			"COALESCE(SUM(due_amount), 0) AS total_due",
		).
		From("sales").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to})

	if salesmanID != "" {
		q = q.Where(squirrel.Eq{"salesman_id": salesmanID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	summary := &reports.SalesSummary{}
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(
		&summary.SaleCount,
		&summary.TotalRevenue,
		&summary.TotalDiscount,
		&summary.TotalPaid,
		&summary.TotalDue,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	return summary, nil
}

// SalesBySalesman breaks period sales down per salesman.
func (r *ReportRepo) SalesBySalesman(ctx context.Context, from, to time.Time) ([]reports.SalesmanBreakdown, error) {
	sql, args, err := r.builder.
		Select(
			"salesman_id",
			"COUNT(*) AS sale_count",
			"COALESCE(SUM(total_amount), 0) AS total_revenue",
			"COALESCE(SUM(due_amount), 0) AS total_due",
		).
		From("sales").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		GroupBy("salesman_id").
		OrderBy("total_revenue DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var breakdown []reports.SalesmanBreakdown
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &breakdown, sql, args...); err != nil {
		return nil, fmt.Errorf("sales by salesman: %w", err)
	}
	return breakdown, nil
}

// WorkerActivity counts completed tasks per worker in [from, to].
func (r *ReportRepo) WorkerActivity(ctx context.Context, from, to time.Time) ([]reports.WorkerActivity, error) {
	sql, args, err := r.builder.
		Select(
			"worker_id",
			"MAX(worker_name) AS worker_name",
			"COUNT(*) AS completed_tasks",
		).
		From("task_history").
		Where(squirrel.GtOrEq{"completed_at": from}).
		Where(squirrel.LtOrEq{"completed_at": to}).
		GroupBy("worker_id").
		OrderBy("completed_tasks DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var activity []reports.WorkerActivity
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &activity, sql, args...); err != nil {
		return nil, fmt.Errorf("worker activity: %w", err)
	}
	return activity, nil
}
