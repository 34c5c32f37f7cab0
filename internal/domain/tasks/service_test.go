package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karobar/internal/core/apperror"
	appcontext "karobar/internal/core/context"
	"karobar/internal/domain"
)

type fakeRepo struct {
	tasks   map[string]*WorkerTask
	history []*HistoryEntry
	plans   map[string]*SalesmanPlan
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tasks: map[string]*WorkerTask{},
		plans: map[string]*SalesmanPlan{},
	}
}

func (r *fakeRepo) UpsertWorkerTask(_ context.Context, t *WorkerTask) error {
	cp := *t
	r.tasks[t.WorkerID] = &cp
	return nil
}

func (r *fakeRepo) GetWorkerTask(_ context.Context, workerID string) (*WorkerTask, error) {
	t, ok := r.tasks[workerID]
	if !ok {
		return nil, apperror.NewNotFound("worker task", workerID)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) UpdateProgress(_ context.Context, workerID string, progress Progress) error {
	t, ok := r.tasks[workerID]
	if !ok {
		return apperror.NewNotFound("worker task", workerID)
	}
	t.Progress = progress
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeRepo) DeleteWorkerTask(_ context.Context, workerID string) error {
	if _, ok := r.tasks[workerID]; !ok {
		return apperror.NewNotFound("worker task", workerID)
	}
	delete(r.tasks, workerID)
	return nil
}

func (r *fakeRepo) ListWorkerTasks(_ context.Context, _ domain.ListFilter) (domain.ListResult[*WorkerTask], error) {
	result := domain.ListResult[*WorkerTask]{}
	for _, t := range r.tasks {
		cp := *t
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) AppendHistory(_ context.Context, entry *HistoryEntry) error {
	cp := *entry
	r.history = append(r.history, &cp)
	return nil
}

func (r *fakeRepo) ListHistory(_ context.Context, filter HistoryFilter) (domain.ListResult[*HistoryEntry], error) {
	result := domain.ListResult[*HistoryEntry]{}
	for _, e := range r.history {
		if filter.WorkerID != "" && e.WorkerID != filter.WorkerID {
			continue
		}
		cp := *e
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) UpsertSalesmanPlan(_ context.Context, p *SalesmanPlan) error {
	cp := *p
	r.plans[p.SalesmanID] = &cp
	return nil
}

func (r *fakeRepo) GetSalesmanPlan(_ context.Context, salesmanID string) (*SalesmanPlan, error) {
	p, ok := r.plans[salesmanID]
	if !ok {
		return nil, apperror.NewNotFound("salesman plan", salesmanID)
	}
	cp := *p
	return &cp, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func asUser(role appcontext.Role, userID string) context.Context {
	return appcontext.WithUser(context.Background(), &appcontext.UserContext{
		UserID: userID,
		Role:   role,
	})
}

func TestAssignWorkerTask(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})
	ctx := asUser(appcontext.RoleManager, "mgr-1")

	task := &WorkerTask{WorkerID: "w-1", WorkerName: "Bilal", Task: "Unload truck"}
	require.NoError(t, svc.AssignWorkerTask(ctx, task))

	stored, err := svc.GetWorkerTask(ctx, "w-1")
	require.NoError(t, err)
	assert.Equal(t, ProgressAssigned, stored.Progress)
	assert.Equal(t, "mgr-1", stored.AssignedBy)
	assert.False(t, stored.AssignedAt.IsZero())
}

func TestAssignWorkerTask_ReplacesCurrent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})
	ctx := asUser(appcontext.RoleManager, "mgr-1")

	require.NoError(t, svc.AssignWorkerTask(ctx, &WorkerTask{WorkerID: "w-1", WorkerName: "Bilal", Task: "Unload truck"}))
	require.NoError(t, svc.AssignWorkerTask(ctx, &WorkerTask{WorkerID: "w-1", WorkerName: "Bilal", Task: "Stack boxes"}))

	stored, err := svc.GetWorkerTask(ctx, "w-1")
	require.NoError(t, err)
	assert.Equal(t, "Stack boxes", stored.Task)
	assert.Equal(t, ProgressAssigned, stored.Progress)
}

func TestUpdateProgress_WorkerOwnTask(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})

	mgrCtx := asUser(appcontext.RoleManager, "mgr-1")
	require.NoError(t, svc.AssignWorkerTask(mgrCtx, &WorkerTask{WorkerID: "w-1", WorkerName: "Bilal", Task: "Unload truck"}))

	workerCtx := asUser(appcontext.RoleWorker, "w-1")
	require.NoError(t, svc.UpdateProgress(workerCtx, "w-1", ProgressInProgress))

	stored, err := svc.GetWorkerTask(workerCtx, "w-1")
	require.NoError(t, err)
	assert.Equal(t, ProgressInProgress, stored.Progress)
}

func TestUpdateProgress_WorkerForeignTaskForbidden(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})

	mgrCtx := asUser(appcontext.RoleManager, "mgr-1")
	require.NoError(t, svc.AssignWorkerTask(mgrCtx, &WorkerTask{WorkerID: "w-1", WorkerName: "Bilal", Task: "Unload truck"}))

	otherCtx := asUser(appcontext.RoleWorker, "w-2")
	err := svc.UpdateProgress(otherCtx, "w-1", ProgressInProgress)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestUpdateProgress_UnknownValue(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})
	ctx := asUser(appcontext.RoleManager, "mgr-1")

	err := svc.UpdateProgress(ctx, "w-1", Progress("paused"))
	require.Error(t, err)
}

func TestCompleteWorkerTask(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})
	ctx := asUser(appcontext.RoleManager, "mgr-1")

	require.NoError(t, svc.AssignWorkerTask(ctx, &WorkerTask{WorkerID: "w-1", WorkerName: "Bilal", Task: "Unload truck"}))

	entry, err := svc.CompleteWorkerTask(ctx, "w-1")
	require.NoError(t, err)
	assert.Equal(t, "w-1", entry.WorkerID)
	assert.Equal(t, "Unload truck", entry.Task)
	assert.False(t, entry.CompletedAt.IsZero())

	// Active slot is cleared, history has the entry.
	_, err = svc.GetWorkerTask(ctx, "w-1")
	require.Error(t, err)

	history, err := svc.ListHistory(ctx, HistoryFilter{WorkerID: "w-1"})
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	assert.Equal(t, "Unload truck", history.Items[0].Task)
}

func TestCompleteWorkerTask_NoActiveTask(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})
	ctx := asUser(appcontext.RoleManager, "mgr-1")

	_, err := svc.CompleteWorkerTask(ctx, "w-9")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, repo.history)
}

func TestAssignSalesmanPlan(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})
	ctx := asUser(appcontext.RoleAdmin, "adm-1")

	plan := &SalesmanPlan{
		SalesmanID:   "s-1",
		SalesmanName: "Imran",
		Location:     "Saddar market",
		ItemsToCarry: []string{"Rose Soap 12pc", "Lemon Dish Bar 24pc"},
	}
	require.NoError(t, svc.AssignSalesmanPlan(ctx, plan))

	stored, err := svc.GetSalesmanPlan(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "Saddar market", stored.Location)
	assert.Equal(t, "adm-1", stored.AssignedBy)
	assert.Len(t, stored.ItemsToCarry, 2)
}

func TestAssignSalesmanPlan_MissingLocation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})
	ctx := asUser(appcontext.RoleAdmin, "adm-1")

	err := svc.AssignSalesmanPlan(ctx, &SalesmanPlan{SalesmanID: "s-1", SalesmanName: "Imran"})
	require.Error(t, err)
	assert.Empty(t, repo.plans)
}
