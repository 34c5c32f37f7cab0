package customer

import (
	"context"

	"karobar/internal/core/id"
	"karobar/internal/core/types"
	"karobar/internal/domain"
)

// ListFilter extends the common filter with customer-specific criteria.
type ListFilter struct {
	domain.ListFilter

	// SalesmanID restricts results to one salesman's customers.
	SalesmanID string

	// WithDueOnly returns only customers with outstanding balance.
	WithDueOnly bool
}

// Repository defines persistence operations for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error

	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)

	// GetForUpdate reads a customer with a row lock. Used by the ledger
	// engine when adjusting TotalDue inside its transaction.
	GetForUpdate(ctx context.Context, customerID id.ID) (*Customer, error)

	Update(ctx context.Context, c *Customer) error

	// AddToTotalDue adjusts the materialized due aggregate by delta
	// (positive on sale creation, negative on payment application).
	// Must only be called inside a ledger transaction.
	AddToTotalDue(ctx context.Context, customerID id.ID, delta types.Money) error

	Delete(ctx context.Context, customerID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Customer], error)
}
