package reports

import (
	"context"
	"time"
)

// Repository runs the aggregate queries reports are built from.
type Repository interface {
	// SalesSummary sums sales in [from, to], optionally for one salesman.
	SalesSummary(ctx context.Context, from, to time.Time, salesmanID string) (*SalesSummary, error)

	// SalesBySalesman breaks period sales down per salesman.
	SalesBySalesman(ctx context.Context, from, to time.Time) ([]SalesmanBreakdown, error)

	// WorkerActivity counts completed tasks per worker in [from, to].
	WorkerActivity(ctx context.Context, from, to time.Time) ([]WorkerActivity, error)
}
