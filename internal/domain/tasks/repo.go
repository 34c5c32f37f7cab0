package tasks

import (
	"context"
	"time"

	"karobar/internal/domain"
)

// HistoryFilter narrows task history listings.
type HistoryFilter struct {
	domain.ListFilter
	WorkerID string
	FromDate *time.Time
	ToDate   *time.Time
}

// Repository defines task persistence. Assignments are upserts keyed by
// worker/salesman ID; history rows are insert-only.
type Repository interface {
	UpsertWorkerTask(ctx context.Context, t *WorkerTask) error
	GetWorkerTask(ctx context.Context, workerID string) (*WorkerTask, error)
	UpdateProgress(ctx context.Context, workerID string, progress Progress) error
	DeleteWorkerTask(ctx context.Context, workerID string) error
	ListWorkerTasks(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*WorkerTask], error)

	AppendHistory(ctx context.Context, entry *HistoryEntry) error
	ListHistory(ctx context.Context, filter HistoryFilter) (domain.ListResult[*HistoryEntry], error)

	UpsertSalesmanPlan(ctx context.Context, p *SalesmanPlan) error
	GetSalesmanPlan(ctx context.Context, salesmanID string) (*SalesmanPlan, error)
}
