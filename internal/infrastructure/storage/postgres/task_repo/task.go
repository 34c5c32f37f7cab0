// Package task_repo provides the PostgreSQL tasks repository.
package task_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"karobar/internal/core/apperror"
	"karobar/internal/domain"
	"karobar/internal/domain/tasks"
	"karobar/internal/infrastructure/storage/postgres"
)

// TaskRepo is the PostgreSQL tasks repository.
type TaskRepo struct {
	txManager *postgres.TxManager
}

var (
	workerTaskCols = postgres.ExtractDBColumns[tasks.WorkerTask]()
	historyCols    = postgres.ExtractDBColumns[tasks.HistoryEntry]()
	planCols       = postgres.ExtractDBColumns[tasks.SalesmanPlan]()
)

// NewTaskRepo creates a new tasks repository.
func NewTaskRepo(txManager *postgres.TxManager) *TaskRepo {
	return &TaskRepo{txManager: txManager}
}

var _ tasks.Repository = (*TaskRepo)(nil)

func (r *TaskRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// UpsertWorkerTask replaces the worker's active task. One row per worker.
func (r *TaskRepo) UpsertWorkerTask(ctx context.Context, t *tasks.WorkerTask) error {
	data := postgres.StructToMap(t)

	cols := make([]string, 0, len(workerTaskCols))
	values := make([]any, 0, len(workerTaskCols))
	for _, col := range workerTaskCols {
		cols = append(cols, col)
		values = append(values, data[col])
	}

	sql, args, err := r.builder().
		Insert("worker_tasks").
		Columns(cols...).
		Values(values...).
		Suffix(`ON CONFLICT (worker_id) DO UPDATE SET
			worker_name = EXCLUDED.worker_name,
			task = EXCLUDED.task,
			progress = EXCLUDED.progress,
			assigned_by = EXCLUDED.assigned_by,
			assigned_at = EXCLUDED.assigned_at,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert worker task: %w", err)
	}
	return nil
}

// GetWorkerTask retrieves a worker's active task.
func (r *TaskRepo) GetWorkerTask(ctx context.Context, workerID string) (*tasks.WorkerTask, error) {
	sql, args, err := r.builder().
		Select(workerTaskCols...).
		From("worker_tasks").
		Where(squirrel.Eq{"worker_id": workerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	t := &tasks.WorkerTask{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("worker_tasks", workerID)
		}
		return nil, fmt.Errorf("get worker task: %w", err)
	}
	return t, nil
}

// UpdateProgress moves the worker's active task to a new progress state.
func (r *TaskRepo) UpdateProgress(ctx context.Context, workerID string, progress tasks.Progress) error {
	sql, args, err := r.builder().
		Update("worker_tasks").
		Set("progress", progress).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"worker_id": workerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("worker_tasks", workerID)
	}
	return nil
}

// DeleteWorkerTask clears the worker's active slot.
func (r *TaskRepo) DeleteWorkerTask(ctx context.Context, workerID string) error {
	sql, args, err := r.builder().
		Delete("worker_tasks").
		Where(squirrel.Eq{"worker_id": workerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete worker task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("worker_tasks", workerID)
	}
	return nil
}

// ListWorkerTasks retrieves active tasks.
func (r *TaskRepo) ListWorkerTasks(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*tasks.WorkerTask], error) {
	result := domain.ListResult[*tasks.WorkerTask]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(workerTaskCols...).
		From("worker_tasks")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"worker_name": pattern},
			squirrel.ILike{"task": pattern},
		})
	}

	querier := r.txManager.GetQuerier(ctx)
	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("assigned_at DESC")
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
		return result, fmt.Errorf("list worker tasks: %w", err)
	}
	return result, nil
}

// AppendHistory inserts a completed-task row. Insert-only.
func (r *TaskRepo) AppendHistory(ctx context.Context, entry *tasks.HistoryEntry) error {
	data := postgres.StructToMap(entry)

	filteredData := make(map[string]any, len(historyCols))
	for _, col := range historyCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert("task_history").
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert task history: %w", err)
	}
	return nil
}

// ListHistory retrieves completed tasks.
func (r *TaskRepo) ListHistory(ctx context.Context, filter tasks.HistoryFilter) (domain.ListResult[*tasks.HistoryEntry], error) {
	result := domain.ListResult[*tasks.HistoryEntry]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(historyCols...).
		From("task_history")

	if filter.WorkerID != "" {
		q = q.Where(squirrel.Eq{"worker_id": filter.WorkerID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"completed_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"completed_at": *filter.ToDate})
	}

	querier := r.txManager.GetQuerier(ctx)
	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("completed_at DESC")
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
		return result, fmt.Errorf("list history: %w", err)
	}
	return result, nil
}

// UpsertSalesmanPlan replaces the salesman's day plan. One row per salesman.
func (r *TaskRepo) UpsertSalesmanPlan(ctx context.Context, p *tasks.SalesmanPlan) error {
	data := postgres.StructToMap(p)

	cols := make([]string, 0, len(planCols))
	values := make([]any, 0, len(planCols))
	for _, col := range planCols {
		cols = append(cols, col)
		values = append(values, data[col])
	}

	sql, args, err := r.builder().
		Insert("salesman_plans").
		Columns(cols...).
		Values(values...).
		Suffix(`ON CONFLICT (salesman_id) DO UPDATE SET
			salesman_name = EXCLUDED.salesman_name,
			location = EXCLUDED.location,
			items_to_carry = EXCLUDED.items_to_carry,
			assigned_by = EXCLUDED.assigned_by,
			assigned_at = EXCLUDED.assigned_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert salesman plan: %w", err)
	}
	return nil
}

// GetSalesmanPlan retrieves the salesman's current plan.
func (r *TaskRepo) GetSalesmanPlan(ctx context.Context, salesmanID string) (*tasks.SalesmanPlan, error) {
	sql, args, err := r.builder().
		Select(planCols...).
		From("salesman_plans").
		Where(squirrel.Eq{"salesman_id": salesmanID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	p := &tasks.SalesmanPlan{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("salesman_plans", salesmanID)
		}
		return nil, fmt.Errorf("get salesman plan: %w", err)
	}
	return p, nil
}
