package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karobar/internal/core/types"
	"karobar/internal/domain/expense"
)

type fakeRepo struct {
	summary *SalesSummary
}

func (r *fakeRepo) SalesSummary(_ context.Context, _, _ time.Time, _ string) (*SalesSummary, error) {
	cp := *r.summary
	return &cp, nil
}

func (r *fakeRepo) SalesBySalesman(_ context.Context, _, _ time.Time) ([]SalesmanBreakdown, error) {
	return nil, nil
}

func (r *fakeRepo) WorkerActivity(_ context.Context, _, _ time.Time) ([]WorkerActivity, error) {
	return nil, nil
}

type fakeExpenses struct {
	totals []expense.CategoryTotal
}

func (f *fakeExpenses) TotalsByCategory(_ context.Context, _, _ time.Time) ([]expense.CategoryTotal, error) {
	return f.totals, nil
}

func money(v int64) types.Money { return types.NewMoneyFromInt(v) }

func period() (time.Time, time.Time) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return from, to
}

func TestProfitLoss(t *testing.T) {
	svc := NewService(
		&fakeRepo{summary: &SalesSummary{SaleCount: 12, TotalRevenue: money(5000)}},
		&fakeExpenses{totals: []expense.CategoryTotal{
			{Category: expense.CategoryRent, Total: money(1200), Count: 1},
			{Category: expense.CategorySalaries, Total: money(1800), Count: 3},
		}},
	)

	from, to := period()
	pl, err := svc.ProfitLoss(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, pl.TotalRevenue.Equal(money(5000)))
	assert.True(t, pl.TotalExpenses.Equal(money(3000)))
	assert.True(t, pl.NetProfitOrLoss.Equal(money(2000)))
}

func TestProfitLoss_Loss(t *testing.T) {
	svc := NewService(
		&fakeRepo{summary: &SalesSummary{TotalRevenue: money(1000)}},
		&fakeExpenses{totals: []expense.CategoryTotal{
			{Category: expense.CategoryOther, Total: money(1500), Count: 2},
		}},
	)

	from, to := period()
	pl, err := svc.ProfitLoss(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, pl.NetProfitOrLoss.Equal(money(-500)))
	assert.True(t, pl.NetProfitOrLoss.IsNegative())
}

func TestExpenses_SumsCategories(t *testing.T) {
	svc := NewService(
		&fakeRepo{summary: &SalesSummary{}},
		&fakeExpenses{totals: []expense.CategoryTotal{
			{Category: expense.CategoryRent, Total: money(100), Count: 1},
			{Category: expense.CategoryTransport, Total: money(250), Count: 4},
		}},
	)

	from, to := period()
	sum, err := svc.Expenses(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, sum.TotalExpenses.Equal(money(350)))
	assert.Equal(t, 5, sum.ExpenseCount)
	assert.Len(t, sum.ByCategory, 2)
}

func TestInvalidPeriod(t *testing.T) {
	svc := NewService(&fakeRepo{summary: &SalesSummary{}}, &fakeExpenses{})

	from, to := period()

	_, err := svc.Sales(context.Background(), to, from, "")
	require.Error(t, err, "end before start")

	_, err = svc.ProfitLoss(context.Background(), time.Time{}, to)
	require.Error(t, err, "zero start")
}
