package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karobar/internal/core/apperror"
	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain"
	"karobar/internal/domain/audit"
)

type fakeRepo struct {
	expenses map[id.ID]*Expense
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{expenses: map[id.ID]*Expense{}}
}

func (r *fakeRepo) Create(_ context.Context, e *Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, expenseID id.ID) (*Expense, error) {
	e, ok := r.expenses[expenseID]
	if !ok {
		return nil, apperror.NewNotFound("expense", expenseID)
	}
	return e, nil
}

func (r *fakeRepo) Update(_ context.Context, e *Expense) error {
	if _, ok := r.expenses[e.ID]; !ok {
		return apperror.NewNotFound("expense", e.ID)
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, expenseID id.ID) error {
	delete(r.expenses, expenseID)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Expense], error) {
	out := domain.ListResult[*Expense]{}
	for _, e := range r.expenses {
		out.Items = append(out.Items, e)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (r *fakeRepo) TotalsByCategory(_ context.Context, _, _ time.Time) ([]CategoryTotal, error) {
	return nil, nil
}

type fakeRecorder struct {
	err     error
	actions []audit.Action
}

func (r *fakeRecorder) RecordChange(_ context.Context, _ string, _ id.ID, action audit.Action, _ map[string]any) error {
	if r.err != nil {
		return r.err
	}
	r.actions = append(r.actions, action)
	return nil
}

// fakeTxManager snapshots the store before the callback and restores it on
// error, the way a rolled-back transaction behaves.
type fakeTxManager struct {
	repo *fakeRepo
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := map[id.ID]*Expense{}
	for k, v := range m.repo.expenses {
		cp := *v
		snap[k] = &cp
	}
	if err := fn(ctx); err != nil {
		m.repo.expenses = snap
		return err
	}
	return nil
}

func newTestService(rec *fakeRecorder) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, rec, &fakeTxManager{repo: repo}), repo
}

func TestCreate(t *testing.T) {
	rec := &fakeRecorder{}
	svc, repo := newTestService(rec)

	e := New("godam rent August", CategoryRent, types.MustMoney("25000"), time.Time{})
	require.NoError(t, svc.Create(context.Background(), e))

	assert.Len(t, repo.expenses, 1)
	assert.Equal(t, []audit.Action{audit.ActionCreate}, rec.actions)
}

func TestCreate_InvalidCategory(t *testing.T) {
	rec := &fakeRecorder{}
	svc, repo := newTestService(rec)

	e := New("misc", Category("snacks"), types.MustMoney("100"), time.Time{})
	require.Error(t, svc.Create(context.Background(), e))
	assert.Empty(t, repo.expenses)
}

func TestCreate_AuditFailureRollsBack(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("sys_audit unavailable")}
	svc, repo := newTestService(rec)

	e := New("godam rent August", CategoryRent, types.MustMoney("25000"), time.Time{})
	err := svc.Create(context.Background(), e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sys_audit unavailable")

	// The expense row must not survive a failed audit write.
	assert.Empty(t, repo.expenses)
}

func TestUpdate_AuditFailureRollsBack(t *testing.T) {
	rec := &fakeRecorder{}
	svc, _ := newTestService(rec)

	e := New("fuel", CategoryTransport, types.MustMoney("3000"), time.Time{})
	require.NoError(t, svc.Create(context.Background(), e))

	rec.err = errors.New("sys_audit unavailable")
	changed := *e
	changed.Amount = types.MustMoney("9000")
	require.Error(t, svc.Update(context.Background(), &changed))

	kept, err := svc.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.True(t, kept.Amount.Equal(types.MustMoney("3000")))
}

func TestDelete_AuditFailureRollsBack(t *testing.T) {
	rec := &fakeRecorder{}
	svc, repo := newTestService(rec)

	e := New("fuel", CategoryTransport, types.MustMoney("3000"), time.Time{})
	require.NoError(t, svc.Create(context.Background(), e))

	rec.err = errors.New("sys_audit unavailable")
	require.Error(t, svc.Delete(context.Background(), e.ID))
	assert.Len(t, repo.expenses, 1)
}
