package expense

import (
	"context"
	"time"

	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain"
)

// ListFilter extends the common filter with expense-specific criteria.
type ListFilter struct {
	domain.ListFilter
	Category Category
	FromDate *time.Time
	ToDate   *time.Time
}

// CategoryTotal is the aggregated spend per category for a period.
type CategoryTotal struct {
	Category Category    `db:"category" json:"category"`
	Total    types.Money `db:"total" json:"total"`
	Count    int         `db:"count" json:"count"`
}

// Repository defines expense persistence.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, expenseID id.ID) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, expenseID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Expense], error)

	// TotalsByCategory aggregates spend per category in [from, to].
	TotalsByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
}
