package tasks

import (
	"context"
	"fmt"
	"time"

	"karobar/internal/core/apperror"
	appcontext "karobar/internal/core/context"
	"karobar/internal/core/id"
	"karobar/internal/core/tx"
	"karobar/internal/domain"
	"karobar/pkg/logger"
)

// Service provides task assignment and completion operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new tasks service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// AssignWorkerTask gives a worker a new active task, replacing any current one.
func (s *Service) AssignWorkerTask(ctx context.Context, t *WorkerTask) error {
	now := time.Now().UTC()
	t.Progress = ProgressAssigned
	t.AssignedAt = now
	t.UpdatedAt = now
	if user := appcontext.GetUser(ctx); user != nil {
		t.AssignedBy = user.UserID
	}

	if err := t.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.UpsertWorkerTask(ctx, t); err != nil {
		return fmt.Errorf("upsert worker task: %w", err)
	}

	logger.Info(ctx, "worker task assigned", "worker_id", t.WorkerID)
	return nil
}

// GetWorkerTask retrieves the active task for a worker.
func (s *Service) GetWorkerTask(ctx context.Context, workerID string) (*WorkerTask, error) {
	return s.repo.GetWorkerTask(ctx, workerID)
}

// UpdateProgress moves a worker's active task to a new progress state.
// Workers may update only their own task; managers may update anyone's.
func (s *Service) UpdateProgress(ctx context.Context, workerID string, progress Progress) error {
	if !ValidProgress(progress) {
		return apperror.NewValidation("unknown progress value").
			WithDetail("progress", string(progress))
	}
	if err := s.checkOwnRecord(ctx, workerID); err != nil {
		return err
	}

	if err := s.repo.UpdateProgress(ctx, workerID, progress); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	logger.Info(ctx, "task progress updated", "worker_id", workerID, "progress", progress)
	return nil
}

// CompleteWorkerTask finishes the active task: a history entry is appended
// and the active slot is cleared, atomically.
func (s *Service) CompleteWorkerTask(ctx context.Context, workerID string) (*HistoryEntry, error) {
	if err := s.checkOwnRecord(ctx, workerID); err != nil {
		return nil, err
	}

	var entry *HistoryEntry
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := s.repo.GetWorkerTask(ctx, workerID)
		if err != nil {
			return err
		}

		entry = &HistoryEntry{
			ID:          id.New(),
			WorkerID:    t.WorkerID,
			WorkerName:  t.WorkerName,
			Task:        t.Task,
			AssignedAt:  t.AssignedAt,
			CompletedAt: time.Now().UTC(),
		}
		if err := s.repo.AppendHistory(ctx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		return s.repo.DeleteWorkerTask(ctx, workerID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "worker task completed", "worker_id", workerID)
	return entry, nil
}

// ListWorkerTasks retrieves active tasks.
func (s *Service) ListWorkerTasks(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*WorkerTask], error) {
	return s.repo.ListWorkerTasks(ctx, filter)
}

// ListHistory retrieves completed tasks.
func (s *Service) ListHistory(ctx context.Context, filter HistoryFilter) (domain.ListResult[*HistoryEntry], error) {
	return s.repo.ListHistory(ctx, filter)
}

// AssignSalesmanPlan sets a salesman's day plan, replacing any current one.
func (s *Service) AssignSalesmanPlan(ctx context.Context, p *SalesmanPlan) error {
	p.AssignedAt = time.Now().UTC()
	if user := appcontext.GetUser(ctx); user != nil {
		p.AssignedBy = user.UserID
	}

	if err := p.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.UpsertSalesmanPlan(ctx, p); err != nil {
		return fmt.Errorf("upsert salesman plan: %w", err)
	}

	logger.Info(ctx, "salesman plan assigned", "salesman_id", p.SalesmanID)
	return nil
}

// GetSalesmanPlan retrieves the current plan for a salesman.
func (s *Service) GetSalesmanPlan(ctx context.Context, salesmanID string) (*SalesmanPlan, error) {
	return s.repo.GetSalesmanPlan(ctx, salesmanID)
}

// checkOwnRecord lets workers act only on their own task. Admins and
// managers can act on any worker's task.
func (s *Service) checkOwnRecord(ctx context.Context, workerID string) error {
	user := appcontext.GetUser(ctx)
	if user == nil {
		return nil
	}
	if user.Role == appcontext.RoleWorker && user.UserID != workerID {
		return apperror.NewForbidden("workers can only update their own task")
	}
	return nil
}
